package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/config"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/utils"
)

const maxGalleryUploadBytes = 10 << 20

// GalleryHandler manages the public portfolio gallery
type GalleryHandler struct {
	db    *gorm.DB
	store ObjectStore
}

func NewGalleryHandler(store ObjectStore) *GalleryHandler {
	return &GalleryHandler{
		db:    config.DB,
		store: store,
	}
}

// UploadImage accepts a multipart image upload and stores it in the
// object store
func (h *GalleryHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxGalleryUploadBytes); err != nil {
		http.Error(w, "File too large or invalid form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, publicID, err := h.store.Upload(header.Filename, file)
	if err != nil {
		log.Printf("❌ Gallery upload failed: %v", err)
		http.Error(w, "Failed to store image", http.StatusInternalServerError)
		return
	}

	image := models.GalleryImage{
		Title:    r.FormValue("title"),
		URL:      url,
		PublicID: publicID,
	}
	if pn := r.FormValue("projectNumber"); pn != "" {
		image.ProjectNumber = &pn
	}
	if lat, err := strconv.ParseFloat(r.FormValue("latitude"), 64); err == nil {
		image.Latitude = &lat
	}
	if lon, err := strconv.ParseFloat(r.FormValue("longitude"), 64); err == nil {
		image.Longitude = &lon
	}

	if err := h.db.Create(&image).Error; err != nil {
		// DB write failed after the object landed; clean it up so the
		// bucket does not accumulate orphans.
		if derr := h.store.Delete(publicID); derr != nil {
			log.Printf("⚠️  orphaned gallery object %s: %v", publicID, derr)
		}
		http.Error(w, "Failed to save image record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Image uploaded successfully",
		"image":   image,
	})
}

// ListImages serves the public gallery. With lat, lon and radius query
// parameters it returns only images taken within radius meters.
func (h *GalleryHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	var images []models.GalleryImage
	query := h.db.Model(&models.GalleryImage{})
	if pn := r.URL.Query().Get("projectNumber"); pn != "" {
		query = query.Where("project_number = ?", pn)
	}
	if err := query.Order("created_at DESC").Find(&images).Error; err != nil {
		http.Error(w, "Failed to fetch gallery", http.StatusInternalServerError)
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	radius, radErr := strconv.ParseFloat(r.URL.Query().Get("radius"), 64)
	if latErr == nil && lonErr == nil && radErr == nil && radius > 0 {
		filtered := images[:0]
		for _, img := range images {
			if img.Latitude == nil || img.Longitude == nil {
				continue
			}
			if utils.DistanceMeters(lat, lon, *img.Latitude, *img.Longitude) <= radius {
				filtered = append(filtered, img)
			}
		}
		images = filtered
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"images": images,
		"count":  len(images),
	})
}

// DeleteImage removes the image record and its stored object
func (h *GalleryHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var image models.GalleryImage
	if err := h.db.First(&image, "id = ?", id).Error; err != nil {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	if err := h.db.Delete(&image).Error; err != nil {
		http.Error(w, "Failed to delete image record", http.StatusInternalServerError)
		return
	}
	if err := h.store.Delete(image.PublicID); err != nil {
		log.Printf("⚠️  failed to remove stored object %s: %v", image.PublicID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Image deleted",
	})
}
