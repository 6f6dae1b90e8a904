package service

import (
	"testing"
	"time"

	"community-service/internal/store"
	"community-service/pkg/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		FullName: name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, title string) *models.ForumPost {
	t.Helper()
	post := &models.ForumPost{Title: title, Content: "content", AuthorID: authorID}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, postID, authorID uint, createdAt time.Time) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Content:   "a comment",
		PostID:    postID,
		AuthorID:  authorID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func createTestAnnouncement(t *testing.T, db *gorm.DB, authorID uint, title string, createdAt time.Time) *models.Announcement {
	t.Helper()
	a := &models.Announcement{
		Title:     title,
		Content:   "content",
		AuthorID:  authorID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}
