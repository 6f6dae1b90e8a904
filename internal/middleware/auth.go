// internal/middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"community-service/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is where RequireAuth stores the authenticated user's ID in
// request locals.
const UserIDKey = "userID"

// RequireAuth validates the bearer token and attaches the user ID to the
// request. Missing/invalid/expired tokens all end the request with 401.
func RequireAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Not authenticated",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.VerifyToken(secret, token)
		if err != nil {
			log.Printf("[AUTH] ❌ REJECTED | IP=%s | Path=%s | %v", c.IP(), c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// UserID reads the authenticated user's ID set by RequireAuth. The second
// return is false on routes that never passed through the middleware.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(UserIDKey).(uint)
	return id, ok
}
