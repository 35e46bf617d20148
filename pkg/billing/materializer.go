package billing

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// materialize creates the project and invoice derived from an accepted
// quotation. It must run inside the same transaction as the status update.
//
// Idempotent: if a project already exists for the quotation (an earlier
// accept, or a concurrent request that won the race) it returns (nil, nil,
// nil) and inserts nothing. When two transactions race past the existence
// check, the unique index on projects.quotation_number rejects the loser
// and the whole transaction is reported as ErrConflict for the caller to
// retry.
func materialize(tx *gorm.DB, q *models.Quotation) (*models.Project, *models.Invoice, error) {
	var existing models.Project
	err := tx.Where("quotation_number = ?", q.Number).First(&existing).Error
	if err == nil {
		return nil, nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, transientf("look up project for "+q.Number, err)
	}

	year := q.Date.Time().Year()

	projectSeq, err := NextSequence(tx, CounterProject)
	if err != nil {
		return nil, nil, err
	}
	invoiceSeq, err := NextSequence(tx, CounterInvoice)
	if err != nil {
		return nil, nil, err
	}

	project := models.Project{
		Number:          FormatNumber(KindProject, year, projectSeq),
		QuotationNumber: q.Number,
		ClientName:      q.ClientName,
		ClientAddress:   q.ClientAddress,
		ClientPhone:     q.ClientPhone,
		Date:            q.Date,
		LineItems:       q.LineItems,
		ExtraWork:       []models.ExtraWorkItem{},
		Subtotal:        q.Subtotal,
		Discount:        q.Discount,
		GrandTotal:      q.GrandTotal,
		SiteImages:      []string{},
		Status:          models.ProjectOngoing,
	}
	if err := tx.Create(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, fmt.Errorf("project for %s already materialized: %w", q.Number, ErrConflict)
		}
		return nil, nil, transientf("insert project "+project.Number, err)
	}

	invoice := models.Invoice{
		Number:          FormatNumber(KindInvoice, year, invoiceSeq),
		ProjectNumber:   project.Number,
		QuotationNumber: q.Number,
		ClientName:      q.ClientName,
		ClientAddress:   q.ClientAddress,
		ClientPhone:     q.ClientPhone,
		Date:            q.Date,
		LineItems:       q.LineItems,
		ExtraWork:       []models.ExtraWorkItem{},
		Subtotal:        q.Subtotal,
		Discount:        q.Discount,
		GrandTotal:      q.GrandTotal,
		PaymentHistory:  []models.PaymentRecord{},
		AmountDue:       q.GrandTotal,
		AccessToken:     newAccessToken(),
	}
	if err := tx.Create(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, fmt.Errorf("invoice for %s already materialized: %w", q.Number, ErrConflict)
		}
		return nil, nil, transientf("insert invoice "+invoice.Number, err)
	}

	return &project, &invoice, nil
}

// newAccessToken returns 128 bits of randomness, hex encoded. The token is
// the only credential for the public invoice view, so it has to be
// unguessable.
func newAccessToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic("billing: cannot read random bytes: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
