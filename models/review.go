package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a customer review submitted from the public site. Reviews are
// hidden until a staff member publishes them.
type Review struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientName      string    `gorm:"size:100;not null" json:"clientName"`
	Rating          int       `gorm:"not null" json:"rating"`
	Comment         string    `gorm:"type:text" json:"comment"`
	ProjectNumber   *string   `gorm:"size:20;index" json:"projectNumber,omitempty"`
	Published       bool      `gorm:"default:false" json:"published"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
