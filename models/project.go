package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project work states.
type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// ExtraWorkItem records work agreed after the quotation was accepted.
type ExtraWorkItem struct {
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Date        JSONTime `json:"date"`
}

// Project is the work record created the first time its quotation is
// accepted. QuotationNumber carries a unique index: at most one project
// ever exists per quotation, no matter how often the quotation toggles
// between accepted and rejected.
type Project struct {
	ID              uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	Number          string                             `gorm:"size:20;uniqueIndex;not null" json:"number"`
	QuotationNumber string                             `gorm:"size:20;uniqueIndex;not null" json:"quotationNumber"`
	ClientName      string                             `gorm:"size:100;not null" json:"clientName"`
	ClientAddress   string                             `gorm:"size:255;not null" json:"clientAddress"`
	ClientPhone     string                             `gorm:"size:15;not null" json:"clientPhone"`
	Date            JSONTime                           `gorm:"not null" json:"date"`
	LineItems       datatypes.JSONSlice[LineItem]      `gorm:"not null" json:"lineItems"`
	ExtraWork       datatypes.JSONSlice[ExtraWorkItem] `json:"extraWork"`
	Subtotal        float64                            `gorm:"not null" json:"subtotal"`
	Discount        float64                            `gorm:"not null;default:0" json:"discount"`
	GrandTotal      float64                            `gorm:"not null" json:"grandTotal"`
	SiteImages      datatypes.JSONSlice[string]        `json:"siteImages"`
	Latitude        *float64                           `json:"latitude,omitempty"`
	Longitude       *float64                           `json:"longitude,omitempty"`
	Status          ProjectStatus                      `gorm:"size:10;not null;default:ongoing" json:"status"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"lastUpdatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
