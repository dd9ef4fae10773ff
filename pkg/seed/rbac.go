package seed

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/rbac"
)

var contentAdminGrants = []string{
	"admin.access",
	"admin.dashboard.view",
	"admin.content.view",
	"admin.content.edit",
	"admin.media.view",
	"admin.media.upload",
	"admin.media.delete",
}

var supportAdminGrants = []string{
	"admin.access",
	"admin.dashboard.view",
	"admin.users.view",
	"admin.users.edit",
	"admin.users.password_reset",
	"admin.users.2fa_reset",
	"admin.users.ban",
	"admin.users.unban",
	"admin.chat.manage",
}

var opsAdminGrants = []string{
	"admin.access",
	"admin.dashboard.view",
	"admin.matches.view",
	"admin.matches.cancel",
	"admin.matches.retry",
	"admin.queue.view",
	"admin.queue.retry",
	"admin.queue.clean",
	"admin.analytics.view",
	"admin.chat.manage",
	"admin.chat.broadcast",
	"admin.settings.chat_config",
	"admin.users.chat_settings",
	"admin.ai_chat.access",
	"admin.ai_chat.query",
}

// SeedPermissions upserts the permission catalog and returns key -> id.
func SeedPermissions(db *gorm.DB) (map[string]string, error) {
	permissionMap := make(map[string]string, len(rbac.Permissions))
	for _, perm := range rbac.Permissions {
		var row model.RbacPermission
		err := db.Where("key = ?", perm.Key).First(&row).Error
		if err == gorm.ErrRecordNotFound {
			row = model.RbacPermission{Key: perm.Key, Description: perm.Description}
			if err := db.Create(&row).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		} else if err := db.Model(&row).Update("description", perm.Description).Error; err != nil {
			return nil, err
		}
		permissionMap[perm.Key] = row.ID
	}
	return permissionMap, nil
}

// UpsertRole ensures the role exists and rewrites its grants from scratch,
// reasserting ALLOW on every run even if something changed the effects.
func UpsertRole(db *gorm.DB, name, description string, allow []string, permissionMap map[string]string) (*model.RbacRole, error) {
	var role model.RbacRole
	err := db.Where("name = ?", name).First(&role).Error
	if err == gorm.ErrRecordNotFound {
		role = model.RbacRole{Name: name, Description: description}
		if err := db.Create(&role).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else if err := db.Model(&role).Update("description", description).Error; err != nil {
		return nil, err
	}

	if err := db.Where("role_id = ?", role.ID).Delete(&model.RbacRolePermission{}).Error; err != nil {
		return nil, err
	}
	for _, key := range allow {
		permID, ok := permissionMap[key]
		if !ok {
			continue
		}
		grant := model.RbacRolePermission{
			RoleID:       role.ID,
			PermissionID: permID,
			Effect:       model.EffectAllow,
		}
		if err := db.Create(&grant).Error; err != nil {
			return nil, err
		}
	}
	return &role, nil
}

func upsertGroup(db *gorm.DB, name, description string) (*model.RbacGroup, error) {
	var group model.RbacGroup
	err := db.Where("name = ?", name).First(&group).Error
	if err == gorm.ErrRecordNotFound {
		group = model.RbacGroup{Name: name, Description: description}
		if err := db.Create(&group).Error; err != nil {
			return nil, err
		}
		return &group, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func linkGroupRole(db *gorm.DB, groupID, roleID string) error {
	link := model.RbacGroupRole{GroupID: groupID, RoleID: roleID}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "role_id"}},
		DoNothing: true,
	}).Create(&link).Error
}

// LinkUserRole attaches a role to a user, safe to rerun.
func LinkUserRole(db *gorm.DB, userID, roleID string) error {
	link := model.RbacUserRole{UserID: userID, RoleID: roleID}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "role_id"}},
		DoNothing: true,
	}).Create(&link).Error
}

// SeedRBAC creates the permission catalog, the standard admin roles with
// their grants, the standard groups, and the group-role links.
func SeedRBAC(db *gorm.DB) error {
	permissionMap, err := SeedPermissions(db)
	if err != nil {
		return err
	}

	_, err = UpsertRole(db, "SuperAdmin", "Full access", rbac.AllPermissionKeys(), permissionMap)
	if err != nil {
		return err
	}
	contentAdmin, err := UpsertRole(db, "ContentAdmin", "Content and media management", contentAdminGrants, permissionMap)
	if err != nil {
		return err
	}
	supportAdmin, err := UpsertRole(db, "SupportAdmin", "User support and account actions", supportAdminGrants, permissionMap)
	if err != nil {
		return err
	}
	opsAdmin, err := UpsertRole(db, "OpsAdmin", "Operations and queue management", opsAdminGrants, permissionMap)
	if err != nil {
		return err
	}

	supportGroup, err := upsertGroup(db, "Support", "Support group")
	if err != nil {
		return err
	}
	contentGroup, err := upsertGroup(db, "Content", "Content group")
	if err != nil {
		return err
	}
	opsGroup, err := upsertGroup(db, "Ops", "Operations group")
	if err != nil {
		return err
	}

	if err := linkGroupRole(db, supportGroup.ID, supportAdmin.ID); err != nil {
		return err
	}
	if err := linkGroupRole(db, contentGroup.ID, contentAdmin.ID); err != nil {
		return err
	}
	if err := linkGroupRole(db, opsGroup.ID, opsAdmin.ID); err != nil {
		return err
	}

	log.Println("RBAC seed complete")
	return nil
}

// SyncSuperAdmin reasserts the SuperAdmin role with every catalog permission
// and links it to the admin user when one exists.
func SyncSuperAdmin(db *gorm.DB, adminEmail string) error {
	permissionMap, err := SeedPermissions(db)
	if err != nil {
		return err
	}

	superAdmin, err := UpsertRole(db, "SuperAdmin", "Full access", rbac.AllPermissionKeys(), permissionMap)
	if err != nil {
		return err
	}

	var admin model.User
	err = db.Where("email = ?", adminEmail).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		log.Printf("SuperAdmin synced with all permissions (admin user %s not found)", adminEmail)
		return nil
	}
	if err != nil {
		return err
	}

	if err := LinkUserRole(db, admin.ID, superAdmin.ID); err != nil {
		return err
	}
	log.Println("SuperAdmin synced with all permissions")
	return nil
}
