package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryImage is one portfolio photo. PublicID is the object-storage key
// used when the image has to be removed again. Coordinates are optional;
// when present the public gallery can be filtered by distance.
type GalleryImage struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"size:200" json:"title"`
	URL           string    `gorm:"size:500;not null" json:"url"`
	PublicID      string    `gorm:"size:255;not null" json:"-"`
	ProjectNumber *string   `gorm:"size:20;index" json:"projectNumber,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (g *GalleryImage) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}
