package main

import (
	"log"

	"llmarena_backend/pkg/config"
	"llmarena_backend/pkg/database"
	"llmarena_backend/pkg/seed"
)

// Seeds everything a fresh environment needs: RBAC catalog, plans,
// entitlements, game definitions, the bootstrap admin, and demo engines.
// Safe to rerun at any time.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := database.Migrate(db, database.AllModels()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seed.SeedRBAC(db); err != nil {
		log.Fatalf("RBAC seed failed: %v", err)
	}
	if err := seed.SeedSubscriptionPlans(db); err != nil {
		log.Fatalf("Plan seed failed: %v", err)
	}
	if err := seed.SeedEntitlements(db); err != nil {
		log.Fatalf("Entitlement seed failed: %v", err)
	}
	if err := seed.EnsureDefaultGames(db); err != nil {
		log.Fatalf("Game seed failed: %v", err)
	}

	admin, err := seed.EnsureAdminUser(db, cfg.Admin)
	if err != nil {
		log.Fatalf("Admin seed failed: %v", err)
	}
	if err := seed.SeedDemoModels(db, admin.ID); err != nil {
		log.Fatalf("Demo model seed failed: %v", err)
	}

	log.Println("Seed completed")
}
