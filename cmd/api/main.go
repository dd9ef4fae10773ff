package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"llmarena_backend/internal/controller"
	"llmarena_backend/internal/middleware"
	"llmarena_backend/pkg/config"
	"llmarena_backend/pkg/cron"
	"llmarena_backend/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := database.Migrate(db, database.AllModels()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	cron.InitEntitlementSyncCron(db)

	app := fiber.New(fiber.Config{
		AppName: "LLM Arena API",
	})
	app.Use(recover.New())
	app.Use(fiberlog.New())

	stripeController := controller.NewStripeController(db, cfg.Stripe)
	planController := controller.NewPlanController(db)
	entitlementController := controller.NewEntitlementController(db)

	api := app.Group("/api")

	// Stripe posts raw JSON here; no auth, signature is the credential.
	api.Post("/webhook", stripeController.HandleWebhook)

	api.Get("/plans", planController.ListPlans)

	authed := api.Group("/", middleware.AuthMiddleware())
	authed.Get("/entitlements/me", entitlementController.GetMyEntitlements)
	authed.Get("/usage/export",
		middleware.RequireEntitlement(db, "export.csv"),
		middleware.EnforceQuota(db, "api.requests.quota"),
		entitlementController.ExportUsage)

	admin := authed.Group("/admin")
	admin.Post("/plans",
		middleware.RequirePermission(db, "admin.plans.edit"),
		planController.CreatePlan)
	admin.Post("/plans/:id/prices",
		middleware.RequirePermission(db, "admin.plans.edit"),
		planController.AttachPrice)
	admin.Post("/entitlements/overrides",
		middleware.RequirePermission(db, "admin.entitlements.edit"),
		entitlementController.CreateOverride)
	admin.Delete("/entitlements/overrides",
		middleware.RequirePermission(db, "admin.entitlements.edit"),
		entitlementController.DeleteOverride)

	log.Printf("Listening on :%s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
