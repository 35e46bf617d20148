package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// acceptedInvoice runs a quotation through accept and returns the fresh
// invoice with its access token loaded.
func acceptedInvoice(t *testing.T, db *gorm.DB, notifier Notifier) models.Invoice {
	t.Helper()
	qsvc := NewQuotationService(db, notifier, nil)
	actor := testActor()

	created, err := qsvc.Create(sampleInput(), actor)
	require.NoError(t, err)
	result, err := qsvc.ChangeStatus(created.Quotation.Number, models.QuotationAccepted, actor)
	require.NoError(t, err)

	var inv models.Invoice
	require.NoError(t, db.First(&inv, "number = ?", result.Invoice.Number).Error)
	return inv
}

func TestRecordPaymentReducesAmountDue(t *testing.T) {
	db := setupTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewInvoiceService(db, notifier)
	inv := acceptedInvoice(t, db, notifier)
	actor := testActor()

	updated, warning, err := svc.RecordPayment(inv.Number, models.PaymentRecord{
		Amount: 1500,
		Date:   models.JSONTime(time.Now()),
		Note:   "advance",
	}, actor)
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, inv.GrandTotal-1500, updated.AmountDue)
	require.Len(t, updated.PaymentHistory, 1)

	updated, _, err = svc.RecordPayment(inv.Number, models.PaymentRecord{Amount: 2500}, actor)
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.AmountDue)
	require.Len(t, updated.PaymentHistory, 2)
}

func TestRecordPaymentRejectsNonPositiveAmounts(t *testing.T) {
	db := setupTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewInvoiceService(db, notifier)
	inv := acceptedInvoice(t, db, notifier)

	for _, amount := range []float64{0, -50} {
		_, _, err := svc.RecordPayment(inv.Number, models.PaymentRecord{Amount: amount}, testActor())
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	}

	// nothing was written
	var stored models.Invoice
	require.NoError(t, db.First(&stored, "number = ?", inv.Number).Error)
	assert.Empty(t, stored.PaymentHistory)
}

func TestRecordPaymentUnknownInvoice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInvoiceService(db, &recordingNotifier{})

	_, _, err := svc.RecordPayment("INV-2024-9999", models.PaymentRecord{Amount: 100}, testActor())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordPaymentWritesAudit(t *testing.T) {
	db := setupTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewInvoiceService(db, notifier)
	inv := acceptedInvoice(t, db, notifier)

	_, _, err := svc.RecordPayment(inv.Number, models.PaymentRecord{Amount: 1000}, testActor())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).
		Where("action = ?", "invoice.payment_recorded").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPublicLookup(t *testing.T) {
	db := setupTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewInvoiceService(db, notifier)
	inv := acceptedInvoice(t, db, notifier)

	found, err := svc.PublicLookup(inv.Number, inv.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, inv.Number, found.Number)

	_, err = svc.PublicLookup(inv.Number, "0123456789abcdef0123456789abcdef")
	assert.ErrorIs(t, err, ErrNotFound, "wrong token must look like a missing invoice")

	_, err = svc.PublicLookup(inv.Number, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.PublicLookup("INV-2024-9999", inv.AccessToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRotateAccessTokenInvalidatesOldLinks(t *testing.T) {
	db := setupTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewInvoiceService(db, notifier)
	inv := acceptedInvoice(t, db, notifier)

	rotated, err := svc.RotateAccessToken(inv.Number, testActor())
	require.NoError(t, err)
	require.Len(t, rotated.AccessToken, 32)
	assert.NotEqual(t, inv.AccessToken, rotated.AccessToken)

	_, err = svc.PublicLookup(inv.Number, inv.AccessToken)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.PublicLookup(inv.Number, rotated.AccessToken)
	assert.NoError(t, err)
}
