package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/config"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/pkg/billing"
)

// InvoiceHandler handles invoice operations. Invoices are created only
// by quotation acceptance; this handler reads them and records payments.
type InvoiceHandler struct {
	db  *gorm.DB
	svc *billing.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(svc *billing.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		db:  config.DB,
		svc: svc,
	}
}

// ListInvoices lists all invoices with filters
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	var invoices []models.Invoice

	query := h.db.Model(&models.Invoice{})
	if search := r.URL.Query().Get("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("client_name LIKE ? OR number LIKE ? OR project_number LIKE ?", like, like, like)
	}
	if due := r.URL.Query().Get("due"); due == "true" {
		query = query.Where("amount_due > 0")
	}

	if err := query.Order("created_at DESC").Find(&invoices).Error; err != nil {
		http.Error(w, "Failed to fetch invoices", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"invoices": invoices,
		"count":    len(invoices),
	})
}

// GetInvoice retrieves one invoice by number
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	var invoice models.Invoice
	if err := h.db.First(&invoice, "number = ?", number).Error; err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"invoice": invoice,
	})
}

// RecordPayment appends a payment to the invoice
func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	var payment models.PaymentRecord
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	invoice, warning, err := h.svc.RecordPayment(number, payment, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Payment recorded successfully",
		"invoice": invoice,
		"warning": warning,
	})
}

// RotateAccessToken issues a fresh client-view token for the invoice and
// returns the new shareable link once. Old links stop working.
func (h *InvoiceHandler) RotateAccessToken(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]

	invoice, err := h.svc.RotateAccessToken(number, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Access token rotated",
		"number":    invoice.Number,
		"publicUrl": "/public/invoices/" + invoice.Number + "?token=" + invoice.AccessToken,
	})
}

// PublicInvoice serves the unauthenticated client view. The token query
// parameter is the only credential.
func (h *InvoiceHandler) PublicInvoice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	number := vars["number"]
	token := r.URL.Query().Get("token")

	invoice, err := h.svc.PublicLookup(number, token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"invoice": invoice,
	})
}
