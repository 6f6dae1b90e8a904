// internal/service/auth.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"community-service/internal/auth"
	"community-service/internal/email"
	"community-service/pkg/models"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type AuthService struct {
	db       *gorm.DB
	secret   []byte
	sender   *email.Sender
	validate *validator.Validate
	baseURL  string
}

func NewAuthService(db *gorm.DB, secret []byte, sender *email.Sender, baseURL string) *AuthService {
	return &AuthService{
		db:       db,
		secret:   secret,
		sender:   sender,
		validate: validator.New(),
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// SignUp creates a user and returns it with a fresh token for auto-login.
func (s *AuthService) SignUp(ctx context.Context, emailAddr, password, name string) (*models.User, string, error) {
	var msgs []string
	if s.validate.Var(emailAddr, "required,email") != nil {
		msgs = append(msgs, "Please enter a valid email address.")
	}
	if strings.TrimSpace(password) == "" {
		msgs = append(msgs, "Password cannot be blank.")
	}
	if strings.TrimSpace(name) == "" {
		msgs = append(msgs, "Name cannot be blank.")
	}
	if len(msgs) > 0 {
		return nil, "", &ValidationError{Messages: msgs}
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", emailAddr).First(&existing).Error
	if err == nil {
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("look up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FullName: name,
		Email:    emailAddr,
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// The unique index is the backstop for concurrent signups with the
		// same address.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := auth.IssueToken(s.secret, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*models.User, string, error) {
	var msgs []string
	if s.validate.Var(emailAddr, "required,email") != nil {
		msgs = append(msgs, "Please enter a valid email address.")
	}
	if password == "" {
		msgs = append(msgs, "Password cannot be blank.")
	}
	if len(msgs) > 0 {
		return nil, "", &ValidationError{Messages: msgs}
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", emailAddr).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.secret, &user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// ForgotPassword stores a one-hour reset token on the user and sends the
// reset email in the background. Email delivery is best effort.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	if s.validate.Var(emailAddr, "required,email") != nil {
		return &ValidationError{Messages: []string{"Please enter a valid email address"}}
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", emailAddr).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("look up user: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)
	expiry := time.Now().Add(time.Hour)

	err = s.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error
	if err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if s.sender == nil {
		log.Printf("⚠️ Reset email skipped for %s (SMTP not configured)", user.Email)
		return nil
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.sender.SendPasswordReset(ctx, user.Email, resetLink); err != nil {
			log.Printf("⚠️ Background reset email failed for %s: %v", user.Email, err)
		}
	}()
	return nil
}
