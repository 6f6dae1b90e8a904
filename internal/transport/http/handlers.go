// internal/transport/http/handlers.go
package http

import (
	"strconv"

	"community-service/internal/middleware"
	"community-service/internal/service"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	auth          *service.AuthService
	profile       *service.ProfileService
	forum         *service.ForumService
	announcements *service.AnnouncementService
	notifications *service.NotificationService
}

func NewHandler(
	auth *service.AuthService,
	profile *service.ProfileService,
	forum *service.ForumService,
	announcements *service.AnnouncementService,
	notifications *service.NotificationService,
) *Handler {
	return &Handler{
		auth:          auth,
		profile:       profile,
		forum:         forum,
		announcements: announcements,
		notifications: notifications,
	}
}

// currentUserID reads the user ID attached by the auth middleware.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	return middleware.UserID(c)
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   "Not authenticated",
	})
}

// getQueryInt parses a query parameter with a default for missing or
// malformed values; out-of-range values are clamped, never rejected.
func getQueryInt(c *fiber.Ctx, key string, def, min, max int) int {
	s := c.Query(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
