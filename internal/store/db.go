// internal/store/db.go
package store

import (
	"fmt"

	"community-service/internal/config"
	"community-service/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and runs auto-migration. The returned handle is
// the only one in the process; everything downstream receives it explicitly.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
	)

	// TranslateError turns driver-specific uniqueness violations into
	// gorm.ErrDuplicatedKey, which the like toggle and signup rely on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to DB: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs auto-migration (safe in dev; use migrations in prod).
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.ForumPost{},
		&models.Comment{},
		&models.Like{},
		&models.Announcement{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
