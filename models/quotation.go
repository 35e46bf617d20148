package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quotation lifecycle states.
type QuotationStatus string

const (
	QuotationPending  QuotationStatus = "pending"
	QuotationAccepted QuotationStatus = "accepted"
	QuotationRejected QuotationStatus = "rejected"
)

// LineItem is one priced row of a quotation. Area and Total are optional
// on input; nil means the client did not supply them (we never use zero
// as a stand-in for "absent").
type LineItem struct {
	Description string   `json:"description"`
	Area        *float64 `json:"area,omitempty"`
	Rate        float64  `json:"rate"`
	Total       *float64 `json:"total,omitempty"`
}

// Quotation is a priced proposal sent to a prospective client. Number is
// assigned once at creation from the quotation counter and never reused,
// even after deletion.
type Quotation struct {
	ID            uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	Number        string                        `gorm:"size:20;uniqueIndex;not null" json:"number"`
	ClientName    string                        `gorm:"size:100;not null" json:"clientName"`
	ClientAddress string                        `gorm:"size:255;not null" json:"clientAddress"`
	ClientPhone   string                        `gorm:"size:15;not null" json:"clientPhone"`
	Date          JSONTime                      `gorm:"not null" json:"date"`
	LineItems     datatypes.JSONSlice[LineItem] `gorm:"not null" json:"lineItems"`
	Subtotal      float64                       `gorm:"not null" json:"subtotal"`
	Discount      float64                       `gorm:"not null;default:0" json:"discount"`
	GrandTotal    float64                       `gorm:"not null" json:"grandTotal"`
	Terms         datatypes.JSONSlice[string]   `json:"terms"`
	Note          *string                       `gorm:"type:text" json:"note,omitempty"`
	Status        QuotationStatus               `gorm:"size:10;not null;default:pending" json:"status"`
	CreatedBy     uuid.UUID                     `gorm:"type:uuid;index;not null" json:"createdBy"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"lastUpdatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Quotation) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}

// ValidStatus reports whether s is one of the three lifecycle states.
func ValidStatus(s QuotationStatus) bool {
	switch s {
	case QuotationPending, QuotationAccepted, QuotationRejected:
		return true
	}
	return false
}
