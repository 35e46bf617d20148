package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/pkg/billing"
)

type silentNotifier struct{}

func (silentNotifier) Send(phone, message string) error { return nil }

func newQuotationTestHandler(t *testing.T) (*QuotationHandler, *InvoiceHandler) {
	db := setupTestDB(t)
	qsvc := billing.NewQuotationService(db, silentNotifier{}, nil)
	isvc := billing.NewInvoiceService(db, silentNotifier{})
	return NewQuotationHandler(qsvc), NewInvoiceHandler(isvc)
}

func createQuotationPayload() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"clientName":    "Ravi Sharma",
		"clientAddress": "12 MG Road, Mumbai",
		"clientPhone":   "9876543210",
		"date":          "2024-03-10",
		"lineItems": []map[string]interface{}{
			{"description": "Interior wall painting", "area": 120, "rate": 25, "total": 3000},
		},
		"subtotal":   3000,
		"discount":   200,
		"grandTotal": 2800,
	})
	return body
}

func TestCreateQuotationHTTP(t *testing.T) {
	qh, _ := newQuotationTestHandler(t)
	admin := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotations", bytes.NewReader(createQuotationPayload()))
	req = asUser(req, admin, models.RoleAdmin)
	rec := httptest.NewRecorder()
	qh.CreateQuotation(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Quotation models.Quotation `json:"quotation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "QUO-2024-0001", resp.Quotation.Number)
	assert.Equal(t, models.QuotationPending, resp.Quotation.Status)
	assert.NotEmpty(t, resp.Quotation.Terms, "default terms fill in when the request sends none")
}

func TestCreateQuotationValidationHTTP(t *testing.T) {
	qh, _ := newQuotationTestHandler(t)

	body, _ := json.Marshal(map[string]interface{}{
		"clientName":  "Ravi",
		"clientPhone": "12",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotations", bytes.NewReader(body))
	req = asUser(req, uuid.New(), models.RoleAdmin)
	rec := httptest.NewRecorder()
	qh.CreateQuotation(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcceptFlowThroughHTTP(t *testing.T) {
	qh, ih := newQuotationTestHandler(t)
	db := qh.db
	admin := uuid.New()

	// create
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotations", bytes.NewReader(createQuotationPayload()))
	req = asUser(req, admin, models.RoleAdmin)
	rec := httptest.NewRecorder()
	qh.CreateQuotation(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	// accept via the status route so mux vars are populated
	router := mux.NewRouter()
	router.HandleFunc("/quotations/{number}/status", func(w http.ResponseWriter, r *http.Request) {
		qh.ChangeQuotationStatus(w, asUser(r, admin, models.RoleAdmin))
	}).Methods("POST")

	body, _ := json.Marshal(map[string]string{"status": "accepted"})
	req = httptest.NewRequest(http.MethodPost, "/quotations/QUO-2024-0001/status", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Project *models.Project `json:"project"`
		Invoice *models.Invoice `json:"invoice"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Project)
	require.NotNil(t, resp.Invoice)
	assert.Equal(t, "PRJ-2024-0001", resp.Project.Number)
	assert.Equal(t, "INV-2024-0001", resp.Invoice.Number)

	// the public view works with the stored token and only with it
	var stored models.Invoice
	require.NoError(t, db.First(&stored, "number = ?", resp.Invoice.Number).Error)

	pub := mux.NewRouter()
	pub.HandleFunc("/public/invoices/{number}", ih.PublicInvoice).Methods("GET")

	req = httptest.NewRequest(http.MethodGet, "/public/invoices/INV-2024-0001?token="+stored.AccessToken, nil)
	rec = httptest.NewRecorder()
	pub.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/public/invoices/INV-2024-0001?token=wrong", nil)
	rec = httptest.NewRecorder()
	pub.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListQuotationsScopedByRole(t *testing.T) {
	qh, _ := newQuotationTestHandler(t)
	owner := uuid.New()
	stranger := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotations", bytes.NewReader(createQuotationPayload()))
	req = asUser(req, owner, models.RoleStaff)
	rec := httptest.NewRecorder()
	qh.CreateQuotation(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	list := func(actor uuid.UUID, role string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/quotations", nil)
		req = asUser(req, actor, role)
		rec := httptest.NewRecorder()
		qh.ListQuotations(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp.Count
	}

	assert.Equal(t, 1, list(owner, models.RoleStaff))
	assert.Equal(t, 0, list(stranger, models.RoleStaff))
	assert.Equal(t, 1, list(stranger, models.RoleAdmin))
}

func TestChangeStatusConflictMapsTo404ForForeignStaff(t *testing.T) {
	qh, _ := newQuotationTestHandler(t)
	owner := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotations", bytes.NewReader(createQuotationPayload()))
	req = asUser(req, owner, models.RoleStaff)
	rec := httptest.NewRecorder()
	qh.CreateQuotation(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	router := mux.NewRouter()
	router.HandleFunc("/quotations/{number}/status", func(w http.ResponseWriter, r *http.Request) {
		qh.ChangeQuotationStatus(w, asUser(r, uuid.New(), models.RoleStaff))
	}).Methods("POST")

	body, _ := json.Marshal(map[string]string{"status": "accepted"})
	req = httptest.NewRequest(http.MethodPost, "/quotations/QUO-2024-0001/status", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
