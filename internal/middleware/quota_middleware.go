package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/entitlement"
	"llmarena_backend/pkg/utils/jwt"
)

// EnforceQuota checks a quota-policy entitlement for the caller and records
// one unit of usage when the request goes through.
func EnforceQuota(db *gorm.DB, key string) fiber.Handler {
	resolver := entitlement.NewResolver(db)

	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		entitlements, err := resolver.Resolve(entitlement.ResolveInput{UserID: claims.UserID})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not resolve entitlements",
			})
		}

		result, err := entitlements.EnforceQuota(key, model.ScopeUser, claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not check quota",
			})
		}
		if !result.Allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":    "Quota exceeded",
				"reset_at": result.ResetAt,
			})
		}

		if err := entitlements.Consume(key, model.ScopeUser, claims.UserID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not record usage",
			})
		}

		return c.Next()
	}
}
