package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20240601_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Counter{}, &models.Quotation{},
					&models.Project{}, &models.Invoice{}, &models.AuditLog{})
			},
		},
		{
			ID: "20240615_add_content_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Review{}, &models.BlogPost{}, &models.GalleryImage{})
			},
		},
		{
			ID: "20240702_add_project_location",
			Migrate: func(tx *gorm.DB) error {
				// Latitude/Longitude came later; AutoMigrate adds the
				// columns for databases created before they existed.
				return tx.AutoMigrate(&models.Project{})
			},
		},
	})
	return m.Migrate()
}
