package rbac

import (
	"gorm.io/gorm"

	"llmarena_backend/internal/model"
)

// Evaluator answers permission checks for one user. Grants come from direct
// roles, group roles, and per-user overrides; an explicit DENY anywhere wins
// over any ALLOW. The legacy ADMIN user role implies every permission unless
// explicitly denied.
type Evaluator struct {
	legacyAdmin bool
	allow       map[string]bool
	deny        map[string]bool
}

func splitEffects(into *Evaluator, key string, effect model.PermissionEffect) {
	if effect == model.EffectDeny {
		into.deny[key] = true
	} else {
		into.allow[key] = true
	}
}

// LoadEvaluator collects the user's effective grant sets from the database.
func LoadEvaluator(db *gorm.DB, userID string) (*Evaluator, error) {
	e := &Evaluator{
		allow: make(map[string]bool),
		deny:  make(map[string]bool),
	}

	var user model.User
	if err := db.Select("role").Where("id = ?", userID).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	} else if user.Role == model.RoleAdmin {
		e.legacyAdmin = true
	}

	roleIDs := make([]string, 0)

	var userRoles []model.RbacUserRole
	if err := db.Where("user_id = ?", userID).Find(&userRoles).Error; err != nil {
		return nil, err
	}
	for _, ur := range userRoles {
		roleIDs = append(roleIDs, ur.RoleID)
	}

	var userGroups []model.RbacUserGroup
	if err := db.Where("user_id = ?", userID).Find(&userGroups).Error; err != nil {
		return nil, err
	}
	if len(userGroups) > 0 {
		groupIDs := make([]string, 0, len(userGroups))
		for _, ug := range userGroups {
			groupIDs = append(groupIDs, ug.GroupID)
		}
		var groupRoles []model.RbacGroupRole
		if err := db.Where("group_id IN ?", groupIDs).Find(&groupRoles).Error; err != nil {
			return nil, err
		}
		for _, gr := range groupRoles {
			roleIDs = append(roleIDs, gr.RoleID)
		}
	}

	if len(roleIDs) > 0 {
		var grants []model.RbacRolePermission
		if err := db.Preload("Permission").Where("role_id IN ?", roleIDs).Find(&grants).Error; err != nil {
			return nil, err
		}
		for _, grant := range grants {
			splitEffects(e, grant.Permission.Key, grant.Effect)
		}
	}

	var overrides []model.RbacUserPermissionOverride
	if err := db.Preload("Permission").Where("user_id = ?", userID).Find(&overrides).Error; err != nil {
		return nil, err
	}
	for _, o := range overrides {
		splitEffects(e, o.Permission.Key, o.Effect)
	}

	return e, nil
}

// Can reports whether the user holds the permission.
func (e *Evaluator) Can(key string) bool {
	if e.deny[key] {
		return false
	}
	if e.allow[key] {
		return true
	}
	return e.legacyAdmin
}

// Effective lists every catalog permission the user currently holds.
func (e *Evaluator) Effective() []string {
	keys := make([]string, 0)
	for _, p := range Permissions {
		if e.Can(p.Key) {
			keys = append(keys, p.Key)
		}
	}
	return keys
}
