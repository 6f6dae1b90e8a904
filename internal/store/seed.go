// internal/store/seed.go
package store

import (
	"errors"
	"fmt"
	"log"

	"community-service/internal/config"
	"community-service/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the initial admin account when none exists yet.
// Announcements cannot be created until at least one admin is present.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("⚠️ Admin seed skipped (ADMIN_EMAIL / ADMIN_PASSWORD not set)")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		if !existing.Role.IsAdmin() {
			if err := db.Model(&existing).Update("role", models.RoleAdmin).Error; err != nil {
				return fmt.Errorf("promote admin: %w", err)
			}
			log.Printf("✅ Promoted existing user %s to admin", cfg.AdminEmail)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		FullName: cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}
