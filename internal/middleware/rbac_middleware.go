package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"llmarena_backend/pkg/rbac"
	"llmarena_backend/pkg/utils/jwt"
)

// RequirePermission loads the caller's RBAC grants and rejects the request
// unless the permission is held.
func RequirePermission(db *gorm.DB, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		evaluator, err := rbac.LoadEvaluator(db, claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not load permissions",
			})
		}

		if !evaluator.Can(permission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to perform this action",
			})
		}

		return c.Next()
	}
}
