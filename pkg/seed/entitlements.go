package seed

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/entitlement"
)

// SeedEntitlements upserts the static entitlement catalog by key, repairs
// rows left without a value type by older schema versions, then recomputes
// every plan's entitlement defaults. Safe to rerun at any time.
func SeedEntitlements(db *gorm.DB) error {
	for _, def := range entitlement.Catalog {
		var existing model.SubscriptionEntitlement
		err := db.Where("key = ?", def.Key).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			row := model.SubscriptionEntitlement{
				Key:              def.Key,
				Description:      def.Description,
				ValueType:        def.ValueType,
				DefaultValue:     entitlement.MarshalValue(def.DefaultValue),
				ValidationSchema: entitlement.MarshalValue(def.ValidationSchema),
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		err = db.Model(&existing).Updates(map[string]interface{}{
			"description":       def.Description,
			"value_type":        def.ValueType,
			"default_value":     entitlement.MarshalValue(def.DefaultValue),
			"validation_schema": entitlement.MarshalValue(def.ValidationSchema),
		}).Error
		if err != nil {
			return err
		}
	}

	// Self-healing pass: rows from before value types existed default to a
	// disabled boolean.
	var stored []model.SubscriptionEntitlement
	if err := db.Find(&stored).Error; err != nil {
		return err
	}
	for _, ent := range stored {
		if ent.ValueType != "" {
			continue
		}
		err := db.Model(&model.SubscriptionEntitlement{}).Where("id = ?", ent.ID).
			Updates(map[string]interface{}{
				"value_type":    model.ValueBool,
				"default_value": entitlement.MarshalValue(false),
			}).Error
		if err != nil {
			return err
		}
	}

	if err := SyncPlanEntitlements(db); err != nil {
		return err
	}

	log.Println("Entitlements seeded and plan defaults backfilled")
	return nil
}

// SyncPlanEntitlements recomputes the full plan x entitlement cross product
// from the per-tier baselines. It is a complete recompute, not an incremental
// diff, and never touches unrelated rows.
func SyncPlanEntitlements(db *gorm.DB) error {
	var entitlements []model.SubscriptionEntitlement
	if err := db.Find(&entitlements).Error; err != nil {
		return err
	}

	var tierEntries []model.SubscriptionTierEntitlement
	if err := db.Find(&tierEntries).Error; err != nil {
		return err
	}

	var plans []model.SubscriptionPlan
	if err := db.Find(&plans).Error; err != nil {
		return err
	}

	for _, plan := range plans {
		planTier := entitlement.TierFromLevel(plan.Level)
		for _, ent := range entitlements {
			enabled := false
			for _, entry := range tierEntries {
				if entry.EntitlementID == ent.ID && entry.Tier == planTier {
					enabled = entry.Enabled
					break
				}
			}

			var value interface{}
			if ent.ValueType == model.ValueBool {
				value = enabled
			} else if enabled {
				value = entitlement.UnmarshalValue(ent.DefaultValue)
			}

			row := model.SubscriptionPlanEntitlement{
				PlanID:        plan.ID,
				EntitlementID: ent.ID,
				Enabled:       enabled,
				Value:         entitlement.MarshalValue(value),
			}
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "plan_id"}, {Name: "entitlement_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"enabled", "value", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
	}

	return nil
}
