// internal/transport/http/auth.go
package http

import (
	"errors"
	"log"

	"community-service/internal/service"
	"community-service/pkg/models"

	"github.com/gofiber/fiber/v2"
)

// userPayload is the user shape returned by login/signup.
func userPayload(u *models.User) fiber.Map {
	return fiber.Map{
		"id":       u.ID,
		"email":    u.Email,
		"fullName": u.FullName,
		"phone":    u.Phone,
		"address":  u.Address,
		"avatar":   u.Avatar,
		"role":     u.Role,
	}
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Email and password are required",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Email and password are required",
		})
	}

	log.Printf("🔑 Login attempt for email: %s", req.Email)

	user, token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"errors":  ve.Messages,
			})
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("🔑 Login rejected for %s", req.Email)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid email or password",
			})
		}
		log.Printf("❌ Login failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "An error occurred during login",
		})
	}

	log.Printf("✅ Login successful for user: %s", user.Email)
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    userPayload(user),
	})
}

func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	user, token, err := h.auth.SignUp(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"errors":  ve.Messages,
			})
		}
		if errors.Is(err, service.ErrEmailTaken) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"error":   "Email already exists",
			})
		}
		log.Printf("❌ Signup failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "An error occurred during signup",
		})
	}

	log.Printf("✅ User signed up: %s", user.Email)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    userPayload(user),
	})
}

func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	err := h.auth.ForgotPassword(c.Context(), req.Email)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"error":   ve.Messages[0],
			})
		}
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "No user found with this email",
			})
		}
		log.Printf("❌ ForgotPassword failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "An error occurred while processing your request",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password reset instructions sent to email",
	})
}
