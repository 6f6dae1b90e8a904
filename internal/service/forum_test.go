package service

import (
	"context"
	"testing"
	"time"

	"community-service/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestToggleLikeFlipsState(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)

	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	post := createTestPost(t, db, alice.ID, "Thread")

	liked, err := svc.ToggleLike(context.Background(), post.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Second toggle returns to the original state.
	liked, err = svc.ToggleLike(context.Background(), post.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestToggleLikeMissingPost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	_, err := svc.ToggleLike(context.Background(), 999, alice.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikeUniquenessConstraint(t *testing.T) {
	db := setupTestDB(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	post := createTestPost(t, db, alice.ID, "Thread")

	require.NoError(t, db.Create(&models.Like{PostID: post.ID, UserID: alice.ID}).Error)
	err := db.Create(&models.Like{PostID: post.ID, UserID: alice.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestToggleLikeResolvesInsertConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)

	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	post := createTestPost(t, db, alice.ID, "Thread")

	// A like created between the toggle's read and insert must not surface
	// as an error; distinct users still toggle independently.
	require.NoError(t, db.Create(&models.Like{PostID: post.ID, UserID: bob.ID}).Error)

	liked, err := svc.ToggleLike(context.Background(), post.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(context.Background(), post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestCreatePostValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	_, err := svc.CreatePost(context.Background(), alice.ID, " ", "")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Len(t, ve.Messages, 2)
}

func TestCreatePostIncludesAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	post, err := svc.CreatePost(context.Background(), alice.ID, "Hello", "First post")
	require.NoError(t, err)
	require.NotNil(t, post.Author)
	assert.Equal(t, "Alice", post.Author.FullName)
	require.NotNil(t, post.Count)
	assert.Equal(t, 0, post.Count.Comments)
}

func TestAddCommentToMissingPost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)
	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	_, err := svc.AddComment(context.Background(), alice.ID, 42, "hello")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetPostCommentsAscending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)

	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	post := createTestPost(t, db, alice.ID, "Thread")

	first, err := svc.AddComment(context.Background(), bob.ID, post.ID, "first")
	require.NoError(t, err)
	second, err := svc.AddComment(context.Background(), bob.ID, post.ID, "second")
	require.NoError(t, err)

	loaded, err := svc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 2)
	assert.Equal(t, first.ID, loaded.Comments[0].ID)
	assert.Equal(t, second.ID, loaded.Comments[1].ID)
	require.NotNil(t, loaded.Count)
	assert.Equal(t, 2, loaded.Count.Comments)
}

func TestGetPostNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)

	_, err := svc.GetPost(context.Background(), 123)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPostsNewestFirstWithCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewForumService(db)

	alice := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	older := createTestPost(t, db, alice.ID, "Older")
	newer := createTestPost(t, db, alice.ID, "Newer")
	require.NoError(t, db.Model(newer).Update("created_at", older.CreatedAt.Add(time.Second)).Error)

	_, err := svc.AddComment(context.Background(), bob.ID, older.ID, "hi")
	require.NoError(t, err)
	_, err = svc.ToggleLike(context.Background(), older.ID, bob.ID)
	require.NoError(t, err)

	posts, err := svc.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Title)
	assert.Equal(t, 1, posts[1].Count.Comments)
	assert.Equal(t, 1, posts[1].Count.Likes)
	assert.NotNil(t, posts[0].Comments, "empty relations serialize as [] not null")
}
