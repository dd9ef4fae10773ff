package cron

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"llmarena_backend/pkg/seed"
)

// InitEntitlementSyncCron re-derives plan entitlement rows nightly so manual
// catalog or plan edits converge without a redeploy.
func InitEntitlementSyncCron(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		if err := seed.SyncPlanEntitlements(db); err != nil {
			log.Printf("Nightly entitlement sync failed: %v", err)
			return
		}
		log.Println("Nightly entitlement sync completed")
	})
	if err != nil {
		log.Printf("Could not schedule entitlement sync: %v", err)
		return c
	}

	c.Start()
	log.Println("Entitlement sync cron started (daily at 03:00)")
	return c
}
