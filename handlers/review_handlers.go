package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/config"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// ReviewHandler handles customer reviews. Submission is public;
// moderation is staff-only.
type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler() *ReviewHandler {
	return &ReviewHandler{db: config.DB}
}

type createReviewRequest struct {
	ClientName    string  `json:"clientName"`
	Rating        int     `json:"rating"`
	Comment       string  `json:"comment"`
	ProjectNumber *string `json:"projectNumber"`
}

// CreateReview accepts a public review submission. New reviews stay
// unpublished until a staff member approves them.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ClientName == "" {
		http.Error(w, "Client name is required", http.StatusBadRequest)
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		http.Error(w, "Rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	review := models.Review{
		ClientName:    req.ClientName,
		Rating:        req.Rating,
		Comment:       req.Comment,
		ProjectNumber: req.ProjectNumber,
	}
	if err := h.db.Create(&review).Error; err != nil {
		http.Error(w, "Failed to save review", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Review submitted, pending approval",
		"review":  review,
	})
}

// ListPublishedReviews lists approved reviews for the public site
func (h *ReviewHandler) ListPublishedReviews(w http.ResponseWriter, r *http.Request) {
	var reviews []models.Review
	if err := h.db.Where("published = ?", true).Order("created_at DESC").Find(&reviews).Error; err != nil {
		http.Error(w, "Failed to fetch reviews", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// ListAllReviews lists every review including unpublished ones
func (h *ReviewHandler) ListAllReviews(w http.ResponseWriter, r *http.Request) {
	var reviews []models.Review
	query := h.db.Model(&models.Review{})
	if published := r.URL.Query().Get("published"); published != "" {
		query = query.Where("published = ?", published == "true")
	}
	if err := query.Order("created_at DESC").Find(&reviews).Error; err != nil {
		http.Error(w, "Failed to fetch reviews", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

type publishReviewRequest struct {
	Published bool `json:"published"`
}

// PublishReview toggles a review's published flag
func (h *ReviewHandler) PublishReview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var req publishReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	var review models.Review
	if err := h.db.First(&review, "id = ?", id).Error; err != nil {
		http.Error(w, "Review not found", http.StatusNotFound)
		return
	}

	review.Published = req.Published
	if err := h.db.Save(&review).Error; err != nil {
		http.Error(w, "Failed to update review", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Review updated",
		"review":  review,
	})
}

// DeleteReview removes a review
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	result := h.db.Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, "Failed to delete review", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Review not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Review deleted",
	})
}
