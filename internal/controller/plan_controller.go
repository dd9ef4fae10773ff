package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/seed"
)

type PlanController struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewPlanController(db *gorm.DB) *PlanController {
	return &PlanController{db: db, validate: validator.New()}
}

type PlanInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Level       int    `json:"level" validate:"required,min=1"`
}

type PlanPriceInput struct {
	StripePriceID string `json:"stripe_price_id" validate:"required"`
	Mode          string `json:"mode" validate:"required,oneof=TEST LIVE"`
}

func (pc *PlanController) ListPlans(c *fiber.Ctx) error {
	var plans []model.SubscriptionPlan
	if err := pc.db.Where("is_active = ?", true).Order("level asc").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch subscription plans",
		})
	}

	return c.JSON(plans)
}

func (pc *PlanController) CreatePlan(c *fiber.Ctx) error {
	input := new(PlanInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := pc.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	plan := model.SubscriptionPlan{
		Name:        input.Name,
		Description: input.Description,
		Level:       input.Level,
		IsActive:    true,
	}
	if err := pc.db.Create(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create plan",
		})
	}

	// New plans pick up their tier's entitlement defaults immediately.
	if err := seed.SyncPlanEntitlements(pc.db); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Plan created but entitlement sync failed",
		})
	}

	return c.JSON(plan)
}

func (pc *PlanController) AttachPrice(c *fiber.Ctx) error {
	planID := c.Params("id")

	var plan model.SubscriptionPlan
	if err := pc.db.Where("id = ?", planID).First(&plan).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
	}

	input := new(PlanPriceInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := pc.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	price := model.SubscriptionPlanPrice{
		PlanID:        plan.ID,
		StripePriceID: input.StripePriceID,
		Mode:          model.StripeMode(input.Mode),
	}
	if err := pc.db.Create(&price).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not attach price",
		})
	}

	return c.JSON(price)
}
