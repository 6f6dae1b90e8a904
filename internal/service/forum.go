// internal/service/forum.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"community-service/pkg/models"

	"gorm.io/gorm"
)

type ForumService struct {
	db *gorm.DB
}

func NewForumService(db *gorm.DB) *ForumService {
	return &ForumService{db: db}
}

func authorSelect(db *gorm.DB) *gorm.DB {
	return db.Select("id", "full_name", "avatar")
}

func likeUserSelect(db *gorm.DB) *gorm.DB {
	return db.Select("id", "full_name")
}

// ListPosts returns every post, newest first, with authors, comments, likes
// and relation counts.
func (s *ForumService) ListPosts(ctx context.Context) ([]models.ForumPost, error) {
	var posts []models.ForumPost
	err := s.db.WithContext(ctx).
		Preload("Author", authorSelect).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author", authorSelect).
		Preload("Likes.User", likeUserSelect).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	for i := range posts {
		normalizePost(&posts[i])
	}
	return posts, nil
}

// GetPost returns a single post with comments in ascending order.
func (s *ForumService) GetPost(ctx context.Context, id uint) (*models.ForumPost, error) {
	var post models.ForumPost
	err := s.db.WithContext(ctx).
		Preload("Author", authorSelect).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author", authorSelect).
		Preload("Likes.User", likeUserSelect).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	normalizePost(&post)
	return &post, nil
}

func (s *ForumService) CreatePost(ctx context.Context, authorID uint, title, content string) (*models.ForumPost, error) {
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

	post := &models.ForumPost{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if err := s.db.WithContext(ctx).Preload("Author", authorSelect).First(post, post.ID).Error; err != nil {
		return nil, fmt.Errorf("reload post: %w", err)
	}
	normalizePost(post)
	return post, nil
}

func (s *ForumService) AddComment(ctx context.Context, authorID, postID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Messages: []string{"Comment cannot be blank."}}
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ForumPost{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	comment := &models.Comment{
		Content:  content,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if err := s.db.WithContext(ctx).Preload("Author", authorSelect).First(comment, comment.ID).Error; err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return comment, nil
}

// ToggleLike flips the like state for (postID, userID) and reports the new
// state. Two concurrent toggles can both observe "absent" and race on the
// insert; the composite unique index rejects the loser, which re-reads the
// winner's state instead of failing the request.
func (s *ForumService) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ForumPost{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check post: %w", err)
	}
	if count == 0 {
		return false, ErrPostNotFound
	}

	var liked bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		switch {
		case err == nil:
			liked = false
			return tx.Delete(&models.Like{}, existing.ID).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			return tx.Create(&models.Like{PostID: postID, UserID: userID}).Error
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent toggle; report whatever
			// state the winner left behind.
			log.Printf("⚠️ Like toggle conflict for post %d user %d, re-reading", postID, userID)
			var current int64
			reErr := s.db.WithContext(ctx).Model(&models.Like{}).
				Where("post_id = ? AND user_id = ?", postID, userID).
				Count(&current).Error
			if reErr != nil {
				return false, fmt.Errorf("re-read like state: %w", reErr)
			}
			return current > 0, nil
		}
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return liked, nil
}

// normalizePost fills relation counts and keeps empty relations as [] rather
// than null in responses.
func normalizePost(post *models.ForumPost) {
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	post.Count = &models.RelationCounts{
		Comments: len(post.Comments),
		Likes:    len(post.Likes),
	}
}
