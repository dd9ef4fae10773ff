package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EntitlementValueType string

const (
	ValueBool   EntitlementValueType = "BOOL"
	ValueNumber EntitlementValueType = "NUMBER"
	ValueString EntitlementValueType = "STRING"
	ValueEnum   EntitlementValueType = "ENUM"
	ValueJSON   EntitlementValueType = "JSON"
)

// SubscriptionEntitlement is a named feature-gating key with a typed default
// value and an optional validation schema.
type SubscriptionEntitlement struct {
	ID               string               `json:"id" gorm:"type:uuid;primaryKey"`
	Key              string               `json:"key" gorm:"uniqueIndex;not null"`
	Description      string               `json:"description"`
	ValueType        EntitlementValueType `json:"value_type" gorm:"type:varchar(16)"`
	DefaultValue     datatypes.JSON       `json:"default_value"`
	ValidationSchema datatypes.JSON       `json:"validation_schema"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Plans []SubscriptionPlanEntitlement `json:"-" gorm:"foreignKey:EntitlementID"`
}

func (e *SubscriptionEntitlement) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// SubscriptionTierEntitlement defines the per-tier baseline before plan-level
// overrides are applied.
type SubscriptionTierEntitlement struct {
	ID            string           `json:"id" gorm:"type:uuid;primaryKey"`
	Tier          SubscriptionTier `json:"tier" gorm:"type:varchar(16);not null;uniqueIndex:idx_tier_entitlement,priority:1"`
	EntitlementID string           `json:"entitlement_id" gorm:"type:uuid;not null;uniqueIndex:idx_tier_entitlement,priority:2"`
	Enabled       bool             `json:"enabled" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`

	Entitlement SubscriptionEntitlement `json:"-" gorm:"foreignKey:EntitlementID"`
}

func (e *SubscriptionTierEntitlement) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// SubscriptionPlanEntitlement is the resolved (plan, entitlement) pair.
type SubscriptionPlanEntitlement struct {
	ID            string         `json:"id" gorm:"type:uuid;primaryKey"`
	PlanID        string         `json:"plan_id" gorm:"type:uuid;not null;uniqueIndex:idx_plan_entitlement,priority:1"`
	EntitlementID string         `json:"entitlement_id" gorm:"type:uuid;not null;uniqueIndex:idx_plan_entitlement,priority:2"`
	Enabled       bool           `json:"enabled" gorm:"default:false"`
	Value         datatypes.JSON `json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *SubscriptionPlanEntitlement) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// EntitlementOverride is a per-user or per-org explicit override. There is
// deliberately no unique constraint on (target_type, target_id,
// entitlement_key); every writer clears matching rows before inserting.
type EntitlementOverride struct {
	ID             string         `json:"id" gorm:"type:uuid;primaryKey"`
	TargetType     TargetType     `json:"target_type" gorm:"type:varchar(8);not null;index:idx_override_target"`
	TargetID       string         `json:"target_id" gorm:"not null;index:idx_override_target"`
	EntitlementKey string         `json:"entitlement_key" gorm:"not null;index"`
	Enabled        bool           `json:"enabled" gorm:"default:false"`
	Value          datatypes.JSON `json:"value"`
	StartsAt       *time.Time     `json:"starts_at"`
	EndsAt         *time.Time     `json:"ends_at"`
	CreatedBy      string         `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
}

func (o *EntitlementOverride) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
