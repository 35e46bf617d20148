package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/config"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/middleware"
	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// setupTestDB opens an isolated in-memory database and points the global
// config.DB at it, since handlers resolve their connection from there.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Counter{},
		&models.Quotation{},
		&models.Project{},
		&models.Invoice{},
		&models.AuditLog{},
		&models.Review{},
		&models.BlogPost{},
		&models.GalleryImage{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

// asUser injects claims directly, bypassing token parsing.
func asUser(r *http.Request, id uuid.UUID, role string) *http.Request {
	return middleware.WithClaims(r, &middleware.Claims{
		UserID: id.String(),
		Name:   "Test User",
		Phone:  "9876543210",
		Role:   role,
	})
}
