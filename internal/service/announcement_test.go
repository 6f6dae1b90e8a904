package service

import (
	"context"
	"testing"
	"time"

	"community-service/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAnnouncementRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnnouncementService(db)

	user := createTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	_, err := svc.Create(context.Background(), user.ID, "Title", "Content")
	assert.ErrorIs(t, err, ErrForbidden)

	var count int64
	require.NoError(t, db.Model(&models.Announcement{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "rejected create must leave no row")
}

func TestCreateAnnouncementUnknownActor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnnouncementService(db)

	_, err := svc.Create(context.Background(), 404, "Title", "Content")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateAnnouncementChecksRoleAtWriteTime(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnnouncementService(db)

	admin := createTestUser(t, db, "Root", "admin@example.com", models.RoleAdmin)

	// Privilege revoked after the token was issued; the write-time check
	// must see the current role.
	require.NoError(t, db.Model(admin).Update("role", models.RoleUser).Error)

	_, err := svc.Create(context.Background(), admin.ID, "Title", "Content")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateAnnouncementAsAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnnouncementService(db)

	admin := createTestUser(t, db, "Root", "admin@example.com", models.RoleAdmin)

	announcement, err := svc.Create(context.Background(), admin.ID, "Maintenance", "Friday night")
	require.NoError(t, err)
	assert.Equal(t, "Maintenance", announcement.Title)
	require.NotNil(t, announcement.Author)
	assert.Equal(t, "Root", announcement.Author.FullName)
}

func TestCreateAnnouncementValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnnouncementService(db)
	admin := createTestUser(t, db, "Root", "admin@example.com", models.RoleAdmin)

	_, err := svc.Create(context.Background(), admin.ID, "", " ")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Len(t, ve.Messages, 2)
}

func TestListAnnouncementsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnnouncementService(db)

	admin := createTestUser(t, db, "Root", "admin@example.com", models.RoleAdmin)
	createTestAnnouncement(t, db, admin.ID, "Older", time.Now().Add(-2*time.Hour))
	createTestAnnouncement(t, db, admin.ID, "Newer", time.Now().Add(-time.Hour))

	announcements, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, announcements, 2)
	assert.Equal(t, "Newer", announcements[0].Title)
	assert.Equal(t, "Older", announcements[1].Title)
}
