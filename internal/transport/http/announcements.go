// internal/transport/http/announcements.go
package http

import (
	"errors"
	"log"

	"community-service/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetAllAnnouncements(c *fiber.Ctx) error {
	announcements, err := h.announcements.List(c.Context())
	if err != nil {
		log.Printf("❌ GetAllAnnouncements failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load announcements"})
	}
	return c.JSON(announcements)
}

func (h *Handler) CreateAnnouncement(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	announcement, err := h.announcements.Create(c.Context(), userID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			log.Printf("🛡️ Announcement create rejected for non-admin user %d", userID)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only admins can create announcements"})
		}
		if ve, ok := service.AsValidation(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": ve.Messages})
		}
		log.Printf("❌ CreateAnnouncement failed for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create announcement"})
	}
	return c.Status(fiber.StatusCreated).JSON(announcement)
}
