package main

import (
	"log"
	"os"

	"llmarena_backend/pkg/config"
	"llmarena_backend/pkg/database"
	"llmarena_backend/pkg/seed"
)

// Reasserts the full RBAC catalog and relinks the admin account to
// SuperAdmin. Run after adding permissions to the catalog.
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

	if err := seed.SyncSuperAdmin(db, email); err != nil {
		log.Fatalf("SuperAdmin sync failed: %v", err)
	}
}
