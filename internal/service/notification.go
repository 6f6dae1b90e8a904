// internal/service/notification.go
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"community-service/pkg/models"

	"gorm.io/gorm"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
	DefaultSinceDays = 14
	MaxSinceDays     = 90
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Feed is the merged activity view returned to clients. Items holds both
// source lists sorted together; Forum and Announcements are kept separate
// for client convenience.
type Feed struct {
	Items         []models.NotificationItem `json:"items"`
	Forum         []models.NotificationItem `json:"forum"`
	Announcements []models.NotificationItem `json:"announcements"`
}

// BuildFeed assembles the activity feed for userID. limit and sinceDays are
// clamped, never rejected: limit to [0,100] (default 20), sinceDays to
// [0,90] (default 14). Any persistence error fails the whole feed; there is
// no partial result.
func (s *NotificationService) BuildFeed(ctx context.Context, userID uint, limit, sinceDays int) (*Feed, error) {
	limit = clamp(limit, 0, MaxFeedLimit)
	sinceDays = clamp(sinceDays, 0, MaxSinceDays)
	sinceDate := time.Now().AddDate(0, 0, -sinceDays)

	feed := &Feed{
		Items:         []models.NotificationItem{},
		Forum:         []models.NotificationItem{},
		Announcements: []models.NotificationItem{},
	}
	if limit == 0 {
		return feed, nil
	}

	relatedIDs, err := s.relatedPostIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(relatedIDs) > 0 {
		var comments []models.Comment
		err := s.db.WithContext(ctx).
			Where("post_id IN ? AND author_id <> ? AND created_at >= ?", relatedIDs, userID, sinceDate).
			Order("created_at DESC").
			Limit(limit).
			Preload("Author", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "full_name", "email")
			}).
			Preload("Post", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "title")
			}).
			Find(&comments).Error
		if err != nil {
			return nil, fmt.Errorf("load recent comments: %w", err)
		}

		for _, c := range comments {
			feed.Forum = append(feed.Forum, commentItem(c))
		}
	}

	var announcements []models.Announcement
	err = s.db.WithContext(ctx).
		Where("created_at >= ?", sinceDate).
		Order("created_at DESC").
		Limit(limit).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "full_name", "email")
		}).
		Find(&announcements).Error
	if err != nil {
		return nil, fmt.Errorf("load recent announcements: %w", err)
	}

	for _, a := range announcements {
		feed.Announcements = append(feed.Announcements, announcementItem(a))
	}

	feed.Items = append(feed.Items, feed.Forum...)
	feed.Items = append(feed.Items, feed.Announcements...)
	sort.SliceStable(feed.Items, func(i, j int) bool {
		return feed.Items[i].CreatedAt.After(feed.Items[j].CreatedAt)
	})

	return feed, nil
}

// relatedPostIDs returns the IDs of posts the user authored or commented on.
func (s *NotificationService) relatedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	var authored []uint
	err := s.db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("author_id = ?", userID).
		Pluck("id", &authored).Error
	if err != nil {
		return nil, fmt.Errorf("load authored posts: %w", err)
	}

	var commented []uint
	err = s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("author_id = ?", userID).
		Distinct().
		Pluck("post_id", &commented).Error
	if err != nil {
		return nil, fmt.Errorf("load commented posts: %w", err)
	}

	seen := make(map[uint]struct{}, len(authored)+len(commented))
	ids := make([]uint, 0, len(authored)+len(commented))
	for _, id := range append(authored, commented...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func commentItem(c models.Comment) models.NotificationItem {
	actorName := "Someone"
	actor := models.NotificationActor{}
	if c.Author != nil {
		actor.ID = c.Author.ID
		actor.Name = c.Author.FullName
		if actor.Name == "" {
			actor.Name = c.Author.Email
		}
		if c.Author.FullName != "" {
			actorName = c.Author.FullName
		}
	}

	postTitle := ""
	var post *models.NotificationRef
	if c.Post != nil {
		post = &models.NotificationRef{ID: c.Post.ID, Title: c.Post.Title}
		postTitle = c.Post.Title
	}

	return models.NotificationItem{
		ID:        fmt.Sprintf("forum_%d", c.ID),
		Type:      models.NotificationForumComment,
		CreatedAt: c.CreatedAt,
		Actor:     actor,
		Post:      post,
		Message:   fmt.Sprintf("%s commented on your thread: %s", actorName, postTitle),
	}
}

func announcementItem(a models.Announcement) models.NotificationItem {
	// Author may have been removed since publication.
	actor := models.NotificationActor{Name: "Admin"}
	if a.Author != nil {
		actor.ID = a.Author.ID
		if a.Author.FullName != "" {
			actor.Name = a.Author.FullName
		} else if a.Author.Email != "" {
			actor.Name = a.Author.Email
		}
	}

	return models.NotificationItem{
		ID:           fmt.Sprintf("announcement_%d", a.ID),
		Type:         models.NotificationAnnouncement,
		CreatedAt:    a.CreatedAt,
		Actor:        actor,
		Announcement: &models.NotificationRef{ID: a.ID, Title: a.Title},
		Message:      fmt.Sprintf("New announcement: %s", a.Title),
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
