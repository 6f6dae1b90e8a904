// internal/service/profile.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"community-service/pkg/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxAvatarSize caps avatar uploads at 5MB.
const MaxAvatarSize = 5 * 1024 * 1024

var allowedAvatarExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,19}$`)

// AvatarStorage is the object store holding avatar assets.
type AvatarStorage interface {
	Upload(ctx context.Context, key string, content []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type ProfileService struct {
	db       *gorm.DB
	storage  AvatarStorage
	validate *validator.Validate
}

func NewProfileService(db *gorm.DB, storage AvatarStorage) *ProfileService {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &ProfileService{db: db, storage: storage, validate: v}
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// UpdateProfileInput carries the mutable fields; nil means "leave as is".
type UpdateProfileInput struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

func (s *ProfileService) Update(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	var msgs []string
	if in.FullName != nil && len(strings.TrimSpace(*in.FullName)) < 2 {
		msgs = append(msgs, "Name must be at least 2 characters long")
	}
	if in.Phone != nil && *in.Phone != "" && s.validate.Var(*in.Phone, "phone") != nil {
		msgs = append(msgs, "Invalid phone number")
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	updates := map[string]interface{}{}
	if in.FullName != nil {
		updates["full_name"] = *in.FullName
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}

	if len(updates) > 0 {
		res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("update profile: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}
	return s.Get(ctx, userID)
}

// UpdateAvatar replaces the user's avatar asset: store the new asset, commit
// the reference, then release the old asset. The old-asset delete is best
// effort; a failed commit removes the freshly stored asset so nothing is
// orphaned.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID uint, filename string, content []byte) (*models.User, error) {
	if s.storage == nil {
		return nil, ErrNoStorage
	}
	if len(content) == 0 {
		return nil, &ValidationError{Messages: []string{"No file uploaded"}}
	}
	if len(content) > MaxAvatarSize {
		return nil, &ValidationError{Messages: []string{"Avatar must be 5MB or smaller"}}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedAvatarExts[ext]
	if !ok {
		return nil, &ValidationError{Messages: []string{"Only image files are allowed!"}}
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	oldAvatar := user.Avatar

	key := fmt.Sprintf("avatars/%s%s", uuid.New().String(), ext)
	if err := s.storage.Upload(ctx, key, content, contentType); err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}
	avatarURL := s.storage.PublicURL(key)

	if err := s.db.WithContext(ctx).Model(user).Update("avatar", avatarURL).Error; err != nil {
		// Roll back the stored asset so a failed commit leaves no orphan.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Printf("⚠️ Failed to clean up avatar %s after commit failure: %v", key, delErr)
		}
		return nil, fmt.Errorf("update avatar reference: %w", err)
	}

	if oldAvatar != nil && *oldAvatar != "" {
		if err := s.storage.Delete(ctx, *oldAvatar); err != nil {
			log.Printf("⚠️ Failed to delete previous avatar %s: %v", *oldAvatar, err)
		}
	}

	user.Avatar = &avatarURL
	return user, nil
}
