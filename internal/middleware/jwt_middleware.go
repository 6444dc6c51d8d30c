package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/services"
)

// AuthRequired verifies the bearer credential and attaches the caller's
// identity and role to the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperrors.NewAuthentication("Unauthorized - Missing or malformed token")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return apperrors.NewAuthentication("Unauthorized - Missing or malformed token")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return apperrors.NewAuthentication("Unauthorized - Invalid token")
		}

		userID, _ := claims["id"].(string)
		email, _ := claims["email"].(string)
		rawRole, _ := claims["role"].(string)

		role, err := models.ParseRole(rawRole)
		if err != nil {
			return apperrors.NewAuthorization("Unauthorized - Invalid role in token")
		}

		c.Locals("user_id", userID)
		c.Locals("email", email)
		c.Locals("role", role)

		return c.Next()
	}
}

// CallerID returns the authenticated user id from the request context.
func CallerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// CallerRole returns the authenticated role from the request context.
func CallerRole(c *fiber.Ctx) models.Role {
	role, _ := c.Locals("role").(models.Role)
	return role
}
