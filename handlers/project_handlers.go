package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/config"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/middleware"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/pkg/billing"
)

// ProjectHandler handles project work-record operations. Projects are
// never created here; they only come into existence when a quotation is
// accepted.
type ProjectHandler struct {
	db *gorm.DB
}

// NewProjectHandler creates a new project handler
func NewProjectHandler() *ProjectHandler {
	return &ProjectHandler{db: config.DB}
}

// UpdateProjectRequest represents the request to update a project
type UpdateProjectRequest struct {
	Status    string   `json:"status"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// ExtraWorkRequest adds one extra-work entry to a project
type ExtraWorkRequest struct {
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        models.JSONTime `json:"date"`
}

// ListProjects lists all projects with filters
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	var projects []models.Project

	query := h.db.Model(&models.Project{})

	// Apply filters
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("client_name LIKE ? OR number LIKE ?", like, like)
	}

	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		http.Error(w, "Failed to fetch projects", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProject retrieves a project by number with its invoice
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	var project models.Project
	if err := h.db.First(&project, "number = ?", number).Error; err != nil {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	response := map[string]interface{}{
		"project": project,
	}
	var invoice models.Invoice
	if err := h.db.Where("project_number = ?", number).First(&invoice).Error; err == nil {
		response["invoice"] = invoice
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// UpdateProject updates a project's status and site location
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	tx := h.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var project models.Project
	if err := tx.First(&project, "number = ?", number).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	if req.Status != "" {
		switch models.ProjectStatus(req.Status) {
		case models.ProjectOngoing, models.ProjectCompleted, models.ProjectCancelled:
			project.Status = models.ProjectStatus(req.Status)
		default:
			tx.Rollback()
			http.Error(w, "Invalid project status", http.StatusBadRequest)
			return
		}
	}
	if req.Latitude != nil {
		project.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		project.Longitude = req.Longitude
	}

	if err := tx.Save(&project).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Failed to update project", http.StatusInternalServerError)
		return
	}

	if err := billing.AppendAudit(tx, "project.updated", middleware.GetUserID(r), map[string]interface{}{
		"number": project.Number,
		"status": project.Status,
	}); err != nil {
		tx.Rollback()
		http.Error(w, "Failed to record audit entry", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Updated project %s", project.Number)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Project updated successfully",
		"project": project,
	})
}

// AddExtraWork appends an extra-work entry to the project. The derived
// invoice is left untouched; extra work is billed separately.
func (h *ProjectHandler) AddExtraWork(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	var req ExtraWorkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Description == "" {
		http.Error(w, "Description is required", http.StatusBadRequest)
		return
	}
	if req.Amount < 0 {
		http.Error(w, "Amount must not be negative", http.StatusBadRequest)
		return
	}

	tx := h.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var project models.Project
	if err := tx.First(&project, "number = ?", number).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	project.ExtraWork = append(project.ExtraWork, models.ExtraWorkItem{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
	})

	if err := tx.Save(&project).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Failed to update project", http.StatusInternalServerError)
		return
	}

	if err := billing.AppendAudit(tx, "project.extra_work_added", middleware.GetUserID(r), map[string]interface{}{
		"number": project.Number,
		"amount": req.Amount,
	}); err != nil {
		tx.Rollback()
		http.Error(w, "Failed to record audit entry", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Extra work recorded",
		"project": project,
	})
}

type siteImageRequest struct {
	PublicID string `json:"publicId"`
}

// AddSiteImage attaches an uploaded image's object key to the project so
// cascading deletes can clean it up later
func (h *ProjectHandler) AddSiteImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	var req siteImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PublicID == "" {
		http.Error(w, "publicId is required", http.StatusBadRequest)
		return
	}

	tx := h.db.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var project models.Project
	if err := tx.First(&project, "number = ?", number).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	project.SiteImages = append(project.SiteImages, req.PublicID)
	if err := tx.Save(&project).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Failed to update project", http.StatusInternalServerError)
		return
	}

	if err := billing.AppendAudit(tx, "project.site_image_added", middleware.GetUserID(r), map[string]interface{}{
		"number":   project.Number,
		"publicId": req.PublicID,
	}); err != nil {
		tx.Rollback()
		http.Error(w, "Failed to record audit entry", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Failed to commit transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Site image attached",
		"project": project,
	})
}
