package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PermissionEffect string

const (
	EffectAllow PermissionEffect = "ALLOW"
	EffectDeny  PermissionEffect = "DENY"
)

type RbacRole struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Permissions []RbacRolePermission `json:"-" gorm:"foreignKey:RoleID"`
}

func (r *RbacRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type RbacPermission struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	Key         string `json:"key" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *RbacPermission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type RbacGroup struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

func (g *RbacGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

type RbacRolePermission struct {
	ID           string           `json:"id" gorm:"type:uuid;primaryKey"`
	RoleID       string           `json:"role_id" gorm:"type:uuid;not null;uniqueIndex:idx_role_permission,priority:1"`
	PermissionID string           `json:"permission_id" gorm:"type:uuid;not null;uniqueIndex:idx_role_permission,priority:2"`
	Effect       PermissionEffect `json:"effect" gorm:"type:varchar(8);default:'ALLOW'"`

	CreatedAt time.Time `json:"created_at"`

	Permission RbacPermission `json:"-" gorm:"foreignKey:PermissionID"`
}

func (r *RbacRolePermission) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type RbacGroupRole struct {
	ID      string `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID string `json:"group_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_role,priority:1"`
	RoleID  string `json:"role_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_role,priority:2"`

	CreatedAt time.Time `json:"created_at"`
}

func (g *RbacGroupRole) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

type RbacUserGroup struct {
	ID      string `json:"id" gorm:"type:uuid;primaryKey"`
	UserID  string `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_group,priority:1"`
	GroupID string `json:"group_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_group,priority:2"`

	CreatedAt time.Time `json:"created_at"`
}

func (u *RbacUserGroup) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type RbacUserRole struct {
	ID     string `json:"id" gorm:"type:uuid;primaryKey"`
	UserID string `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_role,priority:1"`
	RoleID string `json:"role_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_role,priority:2"`

	CreatedAt time.Time `json:"created_at"`
}

func (u *RbacUserRole) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type RbacUserPermissionOverride struct {
	ID           string           `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       string           `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_perm_override,priority:1"`
	PermissionID string           `json:"permission_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_perm_override,priority:2"`
	Effect       PermissionEffect `json:"effect" gorm:"type:varchar(8);default:'ALLOW'"`

	CreatedAt time.Time `json:"created_at"`

	Permission RbacPermission `json:"-" gorm:"foreignKey:PermissionID"`
}

func (o *RbacUserPermissionOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
