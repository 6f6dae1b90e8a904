package service

import (
	"context"
	"testing"

	"community-service/internal/auth"
	"community-service/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestSignUpAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, nil, "http://localhost:3000")

	user, token, err := svc.SignUp(context.Background(), "alice@example.com", "secret123", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FullName)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, token)

	claims, err := auth.VerifyToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	loggedIn, token2, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token2)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, nil, "http://localhost:3000")

	_, _, err := svc.SignUp(context.Background(), "alice@example.com", "secret123", "Alice")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, nil, "http://localhost:3000")

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, nil, "http://localhost:3000")

	_, _, err := svc.SignUp(context.Background(), "not-an-email", "", "")
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Len(t, ve.Messages, 3)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, nil, "http://localhost:3000")

	_, _, err := svc.SignUp(context.Background(), "alice@example.com", "secret123", "Alice")
	require.NoError(t, err)

	_, _, err = svc.SignUp(context.Background(), "alice@example.com", "other456", "Imposter")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestForgotPasswordStoresToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, nil, "http://localhost:3000")

	_, _, err := svc.SignUp(context.Background(), "alice@example.com", "secret123", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(context.Background(), "alice@example.com"))

	var user models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	require.NotNil(t, user.ResetToken)
	assert.Len(t, *user.ResetToken, 64)
	require.NotNil(t, user.ResetTokenExpiry)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testSecret, nil, "http://localhost:3000")

	err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
