// internal/service/announcement.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"community-service/pkg/models"

	"gorm.io/gorm"
)

type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

// List returns all announcements, newest first, with their authors.
func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := s.db.WithContext(ctx).
		Preload("Author", authorSelect).
		Order("created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return announcements, nil
}

// Create publishes an announcement. The acting user's role is loaded fresh
// at write time, never taken from the token, so a revoked admin cannot keep
// publishing on a stale credential.
func (s *AnnouncementService) Create(ctx context.Context, actorID uint, title, content string) (*models.Announcement, error) {
	var actor models.User
	err := s.db.WithContext(ctx).First(&actor, actorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("load actor: %w", err)
	}
	if !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	var msgs []string
	if strings.TrimSpace(title) == "" {
		msgs = append(msgs, "Title cannot be blank.")
	}
	if strings.TrimSpace(content) == "" {
		msgs = append(msgs, "Content cannot be blank.")
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	announcement := &models.Announcement{
		Title:    title,
		Content:  content,
		AuthorID: actorID,
	}
	if err := s.db.WithContext(ctx).Create(announcement).Error; err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	if err := s.db.WithContext(ctx).Preload("Author", authorSelect).First(announcement, announcement.ID).Error; err != nil {
		return nil, fmt.Errorf("reload announcement: %w", err)
	}
	return announcement, nil
}
