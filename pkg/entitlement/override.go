package entitlement

import (
	"gorm.io/gorm"

	"llmarena_backend/internal/model"
)

// SetOverride installs an explicit override for one target. Overrides carry
// no unique constraint on (target, key), so matching rows are cleared first;
// delete-then-create keeps the table free of duplicates on rerun.
func SetOverride(db *gorm.DB, targetType model.TargetType, targetID, key string, enabled bool, value interface{}, createdBy string) error {
	err := db.Where(
		"target_type = ? AND target_id = ? AND entitlement_key = ?",
		targetType, targetID, key,
	).Delete(&model.EntitlementOverride{}).Error
	if err != nil {
		return err
	}

	override := model.EntitlementOverride{
		TargetType:     targetType,
		TargetID:       targetID,
		EntitlementKey: key,
		Enabled:        enabled,
		Value:          MarshalValue(value),
		CreatedBy:      createdBy,
	}
	return db.Create(&override).Error
}

// ClearOverrides removes every override for a target and key.
func ClearOverrides(db *gorm.DB, targetType model.TargetType, targetID, key string) error {
	return db.Where(
		"target_type = ? AND target_id = ? AND entitlement_key = ?",
		targetType, targetID, key,
	).Delete(&model.EntitlementOverride{}).Error
}
