package billing

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// InvoiceService records payments and serves the unauthenticated client
// view of a single invoice.
type InvoiceService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewInvoiceService(db *gorm.DB, notifier Notifier) *InvoiceService {
	return &InvoiceService{db: db, notifier: notifier}
}

// RecordPayment appends a payment to the invoice's history and recomputes
// the amount due, all inside one transaction.
func (s *InvoiceService) RecordPayment(number string, payment models.PaymentRecord, actor Actor) (*models.Invoice, string, error) {
	if payment.Amount <= 0 {
		return nil, "", &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if payment.Date.Time().IsZero() {
		payment.Date = models.JSONTime(time.Now())
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, "", transientf("begin transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var inv models.Invoice
	if err := tx.Where("number = ?", number).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", abort(tx, stageStarted, fmt.Errorf("invoice %s: %w", number, ErrNotFound))
		}
		return nil, "", abort(tx, stageStarted, transientf("load invoice "+number, err))
	}

	inv.PaymentHistory = append(inv.PaymentHistory, payment)
	inv.RecomputeAmountDue()

	if err := tx.Save(&inv).Error; err != nil {
		return nil, "", abort(tx, stageQuotation, transientf("update invoice "+number, err))
	}

	if err := AppendAudit(tx, "invoice.payment_recorded", actor.ID, map[string]interface{}{
		"number":    inv.Number,
		"amount":    payment.Amount,
		"amountDue": inv.AmountDue,
	}); err != nil {
		return nil, "", abort(tx, stageAudit, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, "", transientf("commit payment on "+number, err)
	}

	log.Printf("✅ Recorded payment of %.2f on %s, due %.2f", payment.Amount, inv.Number, inv.AmountDue)
	msg := fmt.Sprintf("Soni Painting - Payment of Rs %.2f received against %s. Balance due: Rs %.2f.",
		payment.Amount, inv.Number, inv.AmountDue)
	warning := notify(s.notifier, inv.ClientPhone, msg)
	return &inv, warning, nil
}

// PublicLookup fetches one invoice for the unauthenticated client view.
// The access token is the only credential; a wrong token is reported the
// same way as a missing invoice so the endpoint leaks nothing.
func (s *InvoiceService) PublicLookup(number, token string) (*models.Invoice, error) {
	if token == "" {
		return nil, fmt.Errorf("invoice %s: %w", number, ErrNotFound)
	}
	var inv models.Invoice
	if err := s.db.Where("number = ?", number).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice %s: %w", number, ErrNotFound)
		}
		return nil, transientf("load invoice "+number, err)
	}
	if subtle.ConstantTimeCompare([]byte(inv.AccessToken), []byte(token)) != 1 {
		return nil, fmt.Errorf("invoice %s: %w", number, ErrNotFound)
	}
	return &inv, nil
}

// RotateAccessToken replaces the invoice's bearer token, invalidating any
// previously shared client links.
func (s *InvoiceService) RotateAccessToken(number string, actor Actor) (*models.Invoice, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, transientf("begin transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var inv models.Invoice
	if err := tx.Where("number = ?", number).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, abort(tx, stageStarted, fmt.Errorf("invoice %s: %w", number, ErrNotFound))
		}
		return nil, abort(tx, stageStarted, transientf("load invoice "+number, err))
	}

	inv.AccessToken = newAccessToken()
	if err := tx.Save(&inv).Error; err != nil {
		return nil, abort(tx, stageQuotation, transientf("update invoice "+number, err))
	}

	if err := AppendAudit(tx, "invoice.token_rotated", actor.ID, map[string]interface{}{
		"number": inv.Number,
	}); err != nil {
		return nil, abort(tx, stageAudit, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, transientf("commit token rotation "+number, err)
	}
	return &inv, nil
}
