package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentRecord is one payment received against an invoice.
type PaymentRecord struct {
	Amount float64  `json:"amount"`
	Date   JSONTime `json:"date"`
	Note   string   `json:"note,omitempty"`
}

// Invoice is the billing record created atomically alongside its project.
// AccessToken is a bearer credential for the unauthenticated client view;
// it is excluded from JSON and must never be logged.
type Invoice struct {
	ID              uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	Number          string                             `gorm:"size:20;uniqueIndex;not null" json:"number"`
	ProjectNumber   string                             `gorm:"size:20;uniqueIndex;not null" json:"projectNumber"`
	QuotationNumber string                             `gorm:"size:20;index;not null" json:"quotationNumber"`
	ClientName      string                             `gorm:"size:100;not null" json:"clientName"`
	ClientAddress   string                             `gorm:"size:255;not null" json:"clientAddress"`
	ClientPhone     string                             `gorm:"size:15;not null" json:"clientPhone"`
	Date            JSONTime                           `gorm:"not null" json:"date"`
	LineItems       datatypes.JSONSlice[LineItem]      `gorm:"not null" json:"lineItems"`
	ExtraWork       datatypes.JSONSlice[ExtraWorkItem] `json:"extraWork"`
	Subtotal        float64                            `gorm:"not null" json:"subtotal"`
	Discount        float64                            `gorm:"not null;default:0" json:"discount"`
	GrandTotal      float64                            `gorm:"not null" json:"grandTotal"`
	PaymentHistory  datatypes.JSONSlice[PaymentRecord] `json:"paymentHistory"`
	AmountDue       float64                            `gorm:"not null" json:"amountDue"`
	AccessToken     string                             `gorm:"size:64;not null" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"lastUpdatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (inv *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return
}

// RecomputeAmountDue refreshes AmountDue from the payment history. Called
// whenever PaymentHistory changes.
func (inv *Invoice) RecomputeAmountDue() {
	var paid float64
	for _, p := range inv.PaymentHistory {
		paid += p.Amount
	}
	inv.AmountDue = inv.GrandTotal - paid
}
