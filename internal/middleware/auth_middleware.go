package middleware

import (
	"crypto/subtle"
	"strings"

	"go-resell-sync/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin validates the admin JWT and sets the admin identity in context
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("admin_email", claims.Email)
		return c.Next()
	}
}

// VerifyWebhookSecret checks Clover's auth header against the configured
// signing secret. Webhook deliveries carry no admin JWT.
func VerifyWebhookSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Status(503).JSON(fiber.Map{"error": "Webhook secret not configured"})
		}
		got := c.Get("X-Clover-Auth")
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid webhook signature"})
		}
		return c.Next()
	}
}
