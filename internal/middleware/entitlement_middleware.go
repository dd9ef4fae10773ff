package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"llmarena_backend/pkg/entitlement"
	"llmarena_backend/pkg/utils/jwt"
)

// RequireEntitlement resolves the caller's effective entitlements and rejects
// the request when the key is not enabled for them.
func RequireEntitlement(db *gorm.DB, key string) fiber.Handler {
	resolver := entitlement.NewResolver(db)

	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		entitlements, err := resolver.Resolve(entitlement.ResolveInput{UserID: claims.UserID})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not resolve entitlements",
			})
		}

		if !entitlements.Has(key) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "This feature requires a higher subscription plan",
			})
		}

		return c.Next()
	}
}
