package main

import (
	"log"
	"os"

	"llmarena_backend/pkg/config"
	"llmarena_backend/pkg/database"
	"llmarena_backend/pkg/seed"
)

// One-off repair: promote the admin account and reassert its chat override.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	email := cfg.Admin.Email
	if len(os.Args) > 1 {
		email = os.Args[1]
	}

	if err := seed.FixAdminEntitlements(db, email); err != nil {
		log.Fatalf("Fix failed: %v", err)
	}
}
