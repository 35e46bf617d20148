package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/config"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/middleware"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/pkg/billing"
)

// QuotationHandler handles quotation lifecycle operations
type QuotationHandler struct {
	db  *gorm.DB
	svc *billing.QuotationService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(svc *billing.QuotationService) *QuotationHandler {
	return &QuotationHandler{
		db:  config.DB,
		svc: svc,
	}
}

// CreateQuotation creates a new quotation with the next QUO- number
func (h *QuotationHandler) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	var input billing.QuotationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(input.Terms) == 0 {
		input.Terms = config.DefaultTerms
	}

	result, err := h.svc.Create(input, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Quotation created successfully",
		"quotation": result.Quotation,
		"warning":   result.Warning,
	})
}

// ListQuotations lists quotations visible to the actor, newest first
func (h *QuotationHandler) ListQuotations(w http.ResponseWriter, r *http.Request) {
	var quotations []models.Quotation

	query := h.db.Model(&models.Quotation{})
	if middleware.GetRole(r) != models.RoleAdmin {
		query = query.Where("created_by = ?", middleware.GetUserID(r))
	}

	// Apply filters
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("client_name LIKE ? OR client_phone LIKE ? OR number LIKE ?", like, like, like)
	}

	if err := query.Order("created_at DESC").Find(&quotations).Error; err != nil {
		http.Error(w, "Failed to fetch quotations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"quotations": quotations,
		"count":      len(quotations),
	})
}

// GetQuotation retrieves one quotation by number, with its derived
// project and invoice when they exist
func (h *QuotationHandler) GetQuotation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	query := h.db.Where("number = ?", number)
	if middleware.GetRole(r) != models.RoleAdmin {
		query = query.Where("created_by = ?", middleware.GetUserID(r))
	}

	var quotation models.Quotation
	if err := query.First(&quotation).Error; err != nil {
		http.Error(w, "Quotation not found", http.StatusNotFound)
		return
	}

	response := map[string]interface{}{
		"quotation": quotation,
	}
	var project models.Project
	if err := h.db.Where("quotation_number = ?", number).First(&project).Error; err == nil {
		response["project"] = project
		var invoice models.Invoice
		if err := h.db.Where("project_number = ?", project.Number).First(&invoice).Error; err == nil {
			response["invoice"] = invoice
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// UpdateQuotation applies a partial update. Financial edits without an
// explicit status push the quotation back to pending.
func (h *QuotationHandler) UpdateQuotation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	var patch billing.QuotationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Update(number, patch, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Quotation updated successfully",
		"quotation": result.Quotation,
		"project":   result.Project,
		"invoice":   result.Invoice,
		"warning":   result.Warning,
	})
}

type statusChangeRequest struct {
	Status models.QuotationStatus `json:"status"`
}

// ChangeQuotationStatus transitions the quotation; the first accept also
// creates the project and invoice
func (h *QuotationHandler) ChangeQuotationStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	var req statusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ChangeStatus(number, req.Status, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Quotation status updated",
		"quotation": result.Quotation,
		"project":   result.Project,
		"invoice":   result.Invoice,
		"warning":   result.Warning,
	})
}

// DeleteQuotation removes the quotation and cascades to its derived
// project and invoice
func (h *QuotationHandler) DeleteQuotation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	result, err := h.svc.Delete(number, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Quotation deleted successfully",
		"warning": result.Warning,
	})
}
