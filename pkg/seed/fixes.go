package seed

import (
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/entitlement"
)

// FixAdminEntitlements promotes the admin account to the ADMIN role if needed
// and grants it an explicit chat.access override.
func FixAdminEntitlements(db *gorm.DB, email string) error {
	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("user not found for email: %s", email)
		}
		return err
	}

	if user.Role != model.RoleAdmin {
		log.Printf("Promoting %s to ADMIN", email)
		if err := db.Model(&user).Update("role", model.RoleAdmin).Error; err != nil {
			return err
		}
	}

	if err := entitlement.SetOverride(db, model.TargetUser, user.ID, "chat.access", true, true, user.ID); err != nil {
		return err
	}

	log.Printf("Chat entitlements fixed for %s", email)
	return nil
}

// BackfillBlackjackCapability appends the blackjack capability to every model
// that already plays texas_holdem but is missing it.
func BackfillBlackjackCapability(db *gorm.DB) error {
	var models []model.AIModel
	if err := db.Find(&models).Error; err != nil {
		return err
	}

	for _, m := range models {
		caps := m.GetCapabilities()
		hasHoldem, hasBlackjack := false, false
		for _, c := range caps {
			if c == "texas_holdem" {
				hasHoldem = true
			}
			if c == "blackjack" {
				hasBlackjack = true
			}
		}
		if !hasHoldem || hasBlackjack {
			continue
		}

		caps = append(caps, "blackjack")
		err := db.Model(&model.AIModel{}).Where("id = ?", m.ID).
			Update("capabilities", entitlement.MarshalValue(caps)).Error
		if err != nil {
			return err
		}
		log.Printf("Updated %s to include blackjack", m.Name)
	}
	return nil
}

// GrantPermissionOverride grants a per-user ALLOW override for one
// permission, creating the permission row when missing.
func GrantPermissionOverride(db *gorm.DB, email, permissionKey, description string) error {
	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("user not found for email: %s", email)
		}
		return err
	}

	var permission model.RbacPermission
	err := db.Where("key = ?", permissionKey).First(&permission).Error
	if err == gorm.ErrRecordNotFound {
		permission = model.RbacPermission{Key: permissionKey, Description: description}
		if err := db.Create(&permission).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	override := model.RbacUserPermissionOverride{
		UserID:       user.ID,
		PermissionID: permission.ID,
		Effect:       model.EffectAllow,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "permission_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"effect": model.EffectAllow}),
	}).Create(&override).Error
	if err != nil {
		return err
	}

	log.Printf("Granted %s to %s", permissionKey, email)
	return nil
}
