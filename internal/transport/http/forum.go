// internal/transport/http/forum.go
package http

import (
	"errors"
	"log"
	"strconv"

	"community-service/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetAllPosts(c *fiber.Ctx) error {
	posts, err := h.forum.ListPosts(c.Context())
	if err != nil {
		log.Printf("❌ GetAllPosts failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load posts"})
	}
	return c.JSON(posts)
}

func (h *Handler) GetPostByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post id"})
	}

	post, err := h.forum.GetPost(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		log.Printf("❌ GetPostByID %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load post"})
	}
	return c.JSON(post)
}

func (h *Handler) CreatePost(c *fiber.Ctx) error {
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

	post, err := h.forum.CreatePost(c.Context(), userID, req.Title, req.Content)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": ve.Messages})
		}
		log.Printf("❌ CreatePost failed for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create post"})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *Handler) AddComment(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		PostID  uint   `json:"postId"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	comment, err := h.forum.AddComment(c.Context(), userID, req.PostID, req.Content)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": ve.Messages})
		}
		if errors.Is(err, service.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		log.Printf("❌ AddComment failed for user %d on post %d: %v", userID, req.PostID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add comment"})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *Handler) ToggleLike(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		PostID uint `json:"postId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	liked, err := h.forum.ToggleLike(c.Context(), req.PostID, userID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		log.Printf("❌ ToggleLike failed for user %d on post %d: %v", userID, req.PostID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to toggle like"})
	}
	return c.JSON(fiber.Map{"liked": liked})
}
