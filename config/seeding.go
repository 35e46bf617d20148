package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// DefaultTerms are attached to new quotations when the form leaves the
// terms section empty.
var DefaultTerms = []string{
	"50% advance payment required to start work",
	"Balance due within 7 days of completion",
	"Quotation valid for 30 days",
	"Material brands as agreed; substitutions only with client approval",
}

// SeedAdminUser creates the initial admin account from ADMIN_PHONE and
// ADMIN_PASSWORD. Skips silently when the account already exists or the
// variables are unset.
func SeedAdminUser(db *gorm.DB) error {
	phone := os.Getenv("ADMIN_PHONE")
	password := os.Getenv("ADMIN_PASSWORD")
	if phone == "" || password == "" {
		log.Println("ADMIN_PHONE/ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:         "Administrator",
		Email:        os.Getenv("ADMIN_EMAIL"),
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if admin.Email == "" {
		admin.Email = "admin@sonipainting.local"
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Seeded admin user %s", phone)
	return nil
}
