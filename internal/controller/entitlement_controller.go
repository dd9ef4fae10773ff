package controller

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/entitlement"
	"llmarena_backend/pkg/utils/jwt"
)

type EntitlementController struct {
	db       *gorm.DB
	resolver *entitlement.Resolver
	validate *validator.Validate
}

func NewEntitlementController(db *gorm.DB) *EntitlementController {
	return &EntitlementController{
		db:       db,
		resolver: entitlement.NewResolver(db),
		validate: validator.New(),
	}
}

// GetMyEntitlements returns the caller's resolved entitlement map.
func (ec *EntitlementController) GetMyEntitlements(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	entitlements, err := ec.resolver.Resolve(entitlement.ResolveInput{UserID: claims.UserID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not resolve entitlements",
		})
	}

	return c.JSON(entitlements.Resolved)
}

// ExportUsage downloads the caller's usage counters as CSV.
func (ec *EntitlementController) ExportUsage(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var counters []model.UsageCounter
	err := ec.db.Where("scope_type = ? AND scope_id = ?", model.ScopeUser, claims.UserID).
		Order("window_start asc").Find(&counters).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not export usage",
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"entitlement_key", "window_start", "count"})
	for _, counter := range counters {
		w.Write([]string{
			counter.EntitlementKey,
			counter.WindowStart.Format(time.RFC3339),
			strconv.FormatInt(counter.Count, 10),
		})
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", `attachment; filename="usage.csv"`)
	return c.SendString(buf.String())
}

type OverrideInput struct {
	TargetType     string      `json:"target_type" validate:"required,oneof=USER ORG"`
	TargetID       string      `json:"target_id" validate:"required"`
	EntitlementKey string      `json:"entitlement_key" validate:"required"`
	Enabled        bool        `json:"enabled"`
	Value          interface{} `json:"value"`
}

// CreateOverride installs an admin override for a user or org.
func (ec *EntitlementController) CreateOverride(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(OverrideInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := ec.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err := entitlement.SetOverride(
		ec.db,
		model.TargetType(input.TargetType),
		input.TargetID,
		input.EntitlementKey,
		input.Enabled,
		input.Value,
		claims.UserID,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create override",
		})
	}

	return c.JSON(fiber.Map{"message": "Override applied"})
}

// DeleteOverride clears every override for a target and key.
func (ec *EntitlementController) DeleteOverride(c *fiber.Ctx) error {
	targetType := c.Query("target_type", string(model.TargetUser))
	targetID := c.Query("target_id")
	key := c.Query("entitlement_key")
	if targetID == "" || key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "target_id and entitlement_key are required",
		})
	}

	err := entitlement.ClearOverrides(ec.db, model.TargetType(targetType), targetID, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete overrides",
		})
	}

	return c.JSON(fiber.Map{"message": "Overrides cleared"})
}
