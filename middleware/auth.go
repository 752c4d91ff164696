package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/smilepoint/clinic-api/session"
)

// Protected validates the bearer JWT, rejects revoked tokens and copies the
// session identity into request locals (userID, email, role, name).
func Protected(secret string, sessions *session.Store) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			raw := RawToken(c)
			if revoked, err := sessions.IsRevoked(c.Context(), raw); err == nil && revoked {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token has been revoked",
				})
			}

			userID, err := claimString(claims, "id")
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid user ID in token",
				})
			}
			role, err := claimString(claims, "role")
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid role in token",
				})
			}

			c.Locals("userID", userID)
			c.Locals("role", role)
			if email, err := claimString(claims, "email"); err == nil {
				c.Locals("email", email)
			}
			if name, err := claimString(claims, "name"); err == nil {
				c.Locals("name", name)
			}

			return c.Next()
		},
	})
}

// RequireRole rejects sessions whose role claim is not in the allowed set.
// Must run after Protected.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User role not found in context",
			})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have the required role to perform this action",
		})
	}
}

// RawToken extracts the bearer token string from the Authorization header.
func RawToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}

func claimString(claims jwt.MapClaims, key string) (string, error) {
	v, ok := claims[key]
	if !ok || v == nil {
		return "", fmt.Errorf("no %s found in claims", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("unsupported %s type: %T", key, v)
	}
	return s, nil
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
