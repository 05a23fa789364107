package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MijaMange/showreel-saas/internal/models"
	"github.com/MijaMange/showreel-saas/internal/services"
)

// IdentityKey is the fiber locals key holding the *models.Identity of the
// current viewer. Absent or nil means anonymous viewing.
const IdentityKey = "identity"

// Viewer returns the viewer identity stored by the auth middleware, or nil
// for anonymous requests.
func Viewer(c *fiber.Ctx) *models.Identity {
	if identity, ok := c.Locals(IdentityKey).(*models.Identity); ok {
		return identity
	}
	return nil
}

// AuthRequired is a Fiber middleware that rejects requests without a valid
// bearer token and stores the viewer identity for subsequent handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errMsg := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": errMsg,
			})
		}

		identity, err := authService.IdentityFromToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// OptionalAuth extracts the viewer identity when a valid bearer token is
// present and continues anonymously otherwise. Used on read surfaces where
// absence of identity simply means public viewing.
func OptionalAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, _ := bearerToken(c)
		if tokenString != "" {
			if identity, err := authService.IdentityFromToken(tokenString); err == nil {
				c.Locals(IdentityKey, identity)
			}
		}
		return c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, returning a caller-facing message when it is missing or malformed.
func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "Authorization header is required"
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return "", "Authorization header format must be 'Bearer <token>'"
	}
	return parts[1], ""
}
