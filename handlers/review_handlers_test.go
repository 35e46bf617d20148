package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

func TestReviewModerationFlow(t *testing.T) {
	db := setupTestDB(t)
	h := NewReviewHandler()

	// public submission
	body, _ := json.Marshal(map[string]interface{}{
		"clientName": "Meena Patel",
		"rating":     5,
		"comment":    "Great finish, on schedule.",
	})
	req := httptest.NewRequest(http.MethodPost, "/public/reviews", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateReview(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Review models.Review `json:"review"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.False(t, created.Review.Published, "new reviews start unpublished")

	// hidden from the public list until approved
	rec = httptest.NewRecorder()
	h.ListPublishedReviews(rec, httptest.NewRequest(http.MethodGet, "/public/reviews", nil))
	var listed struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Equal(t, 0, listed.Count)

	// staff publishes it
	router := mux.NewRouter()
	router.HandleFunc("/reviews/{id}/publish", h.PublishReview).Methods("POST")
	body, _ = json.Marshal(map[string]bool{"published": true})
	req = httptest.NewRequest(http.MethodPost, "/reviews/"+created.Review.ID.String()+"/publish", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ListPublishedReviews(rec, httptest.NewRequest(http.MethodGet, "/public/reviews", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Count)

	var stored models.Review
	require.NoError(t, db.First(&stored, "id = ?", created.Review.ID).Error)
	assert.True(t, stored.Published)
}

func TestCreateReviewRejectsBadRating(t *testing.T) {
	setupTestDB(t)
	h := NewReviewHandler()

	for _, rating := range []int{0, 6, -1} {
		body, _ := json.Marshal(map[string]interface{}{
			"clientName": "Meena",
			"rating":     rating,
		})
		rec := httptest.NewRecorder()
		h.CreateReview(rec, httptest.NewRequest(http.MethodPost, "/public/reviews", bytes.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}
