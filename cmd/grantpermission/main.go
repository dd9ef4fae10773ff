package main

import (
	"log"
	"os"

	"llmarena_backend/pkg/config"
	"llmarena_backend/pkg/database"
	"llmarena_backend/pkg/seed"
)

// Grants model management access to one user as a per-user ALLOW override.
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

	err = seed.GrantPermissionOverride(db, email, "admin.models.edit", "Create or edit models")
	if err != nil {
		log.Fatalf("Grant failed: %v", err)
	}
}
