package main

import (
	"log"

	"llmarena_backend/pkg/config"
	"llmarena_backend/pkg/database"
	"llmarena_backend/pkg/seed"
)

// One-off backfill: models that can play texas_holdem also get blackjack.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := seed.BackfillBlackjackCapability(db); err != nil {
		log.Fatalf("Backfill failed: %v", err)
	}

	log.Println("Capability backfill completed")
}
