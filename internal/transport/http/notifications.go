// internal/transport/http/notifications.go
package http

import (
	"log"

	"community-service/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications returns the merged activity feed for the authenticated
// user. `limit` and `sinceDays` are clamped, never rejected.
func (h *Handler) GetNotifications(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	limit := getQueryInt(c, "limit", service.DefaultFeedLimit, 0, service.MaxFeedLimit)
	sinceDays := getQueryInt(c, "sinceDays", service.DefaultSinceDays, 0, service.MaxSinceDays)

	feed, err := h.notifications.BuildFeed(c.Context(), userID, limit, sinceDays)
	if err != nil {
		log.Printf("❌ GetNotifications failed for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load notifications"})
	}
	return c.JSON(feed)
}
