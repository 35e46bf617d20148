package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

func galleryUploadRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "site.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gallery", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestGalleryUploadAndDistanceFilter(t *testing.T) {
	db := setupTestDB(t)
	store := NewLocalStore(t.TempDir())
	h := NewGalleryHandler(store)

	rec := httptest.NewRecorder()
	h.UploadImage(rec, galleryUploadRequest(t, map[string]string{
		"title":     "Bandra flat exterior",
		"latitude":  "19.0596",
		"longitude": "72.8295",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	h.UploadImage(rec, galleryUploadRequest(t, map[string]string{
		"title": "No location",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.GalleryImage{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// full list
	rec = httptest.NewRecorder()
	h.ListImages(rec, httptest.NewRequest(http.MethodGet, "/public/gallery", nil))
	var listed struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Equal(t, 2, listed.Count)

	// within 1 km of Bandra: only the geotagged image
	rec = httptest.NewRecorder()
	h.ListImages(rec, httptest.NewRequest(http.MethodGet, "/public/gallery?lat=19.0596&lon=72.8295&radius=1000", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Count)

	// 1 km around a point far away matches nothing
	rec = httptest.NewRecorder()
	h.ListImages(rec, httptest.NewRequest(http.MethodGet, "/public/gallery?lat=28.6&lon=77.2&radius=1000", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Equal(t, 0, listed.Count)
}

func TestGalleryUploadRequiresFile(t *testing.T) {
	setupTestDB(t)
	h := NewGalleryHandler(NewLocalStore(t.TempDir()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gallery", strings.NewReader("not-multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	rec := httptest.NewRecorder()
	h.UploadImage(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocalStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	url, publicID, err := store.Upload("photo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/files/"))
	assert.True(t, strings.HasSuffix(publicID, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, publicID))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(publicID))
	_, err = os.Stat(filepath.Join(dir, publicID))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, store.Delete(publicID))
}
