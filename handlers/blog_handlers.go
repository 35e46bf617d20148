package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/config"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/middleware"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/utils"
)

// BlogHandler handles blog post management and the public blog feed
type BlogHandler struct {
	db *gorm.DB
}

func NewBlogHandler() *BlogHandler {
	return &BlogHandler{db: config.DB}
}

type blogPostRequest struct {
	Title      string  `json:"title"`
	Body       string  `json:"body"`
	CoverImage *string `json:"coverImage"`
	Published  *bool   `json:"published"`
}

// CreateBlogPost creates a post; the slug is derived from the title
func (h *BlogHandler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var req blogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Body == "" {
		http.Error(w, "Title and body are required", http.StatusBadRequest)
		return
	}

	post := models.BlogPost{
		Title:      req.Title,
		Slug:       utils.Slugify(req.Title),
		Body:       req.Body,
		CoverImage: req.CoverImage,
		CreatedBy:  middleware.GetUserID(r),
	}
	if req.Published != nil && *req.Published {
		post.Published = true
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := h.db.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			http.Error(w, "A post with this title already exists", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to save post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Post created successfully",
		"post":    post,
	})
}

// ListBlogPosts lists all posts for staff
func (h *BlogHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	var posts []models.BlogPost
	if err := h.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		http.Error(w, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"posts": posts,
		"count": len(posts),
	})
}

// ListPublishedPosts lists published posts for the public site
func (h *BlogHandler) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	var posts []models.BlogPost
	if err := h.db.Where("published = ?", true).Order("published_at DESC").Find(&posts).Error; err != nil {
		http.Error(w, "Failed to fetch posts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"posts": posts,
		"count": len(posts),
	})
}

// GetBlogPostBySlug serves one published post by slug
func (h *BlogHandler) GetBlogPostBySlug(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	var post models.BlogPost
	if err := h.db.Where("slug = ? AND published = ?", slug, true).First(&post).Error; err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"post": post,
	})
}

// UpdateBlogPost updates title, body, cover image or publication state.
// Changing the title does not change the slug; published URLs stay stable.
func (h *BlogHandler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var req blogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	var post models.BlogPost
	if err := h.db.First(&post, "id = ?", id).Error; err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Body != "" {
		post.Body = req.Body
	}
	if req.CoverImage != nil {
		post.CoverImage = req.CoverImage
	}
	if req.Published != nil {
		if *req.Published && !post.Published {
			now := time.Now()
			post.PublishedAt = &now
		}
		post.Published = *req.Published
	}

	if err := h.db.Save(&post).Error; err != nil {
		http.Error(w, "Failed to update post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Post updated successfully",
		"post":    post,
	})
}

// DeleteBlogPost soft-deletes a post
func (h *BlogHandler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	result := h.db.Delete(&models.BlogPost{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, "Failed to delete post", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Post deleted",
	})
}
