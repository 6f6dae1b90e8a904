package auth

import (
	"testing"
	"time"

	"community-service/pkg/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")
	user := &models.User{ID: 7, Email: "alice@example.com"}

	token, err := IssueToken(secret, user)
	require.NoError(t, err)

	claims, err := VerifyToken(secret, token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	user := &models.User{ID: 7, Email: "alice@example.com"}
	token, err := IssueToken([]byte("secret"), user)
	require.NoError(t, err)

	_, err = VerifyToken([]byte("other"), token)
	assert.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	secret := []byte("secret")
	claims := &Claims{
		UserID: 7,
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = VerifyToken(secret, token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsNoneAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyToken([]byte("secret"), token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken([]byte("secret"), "not.a.token")
	assert.Error(t, err)
}
