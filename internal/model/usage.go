package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsageScopeType string

const (
	ScopeUser   UsageScopeType = "USER"
	ScopeOrg    UsageScopeType = "ORG"
	ScopeAPIKey UsageScopeType = "API_KEY"
	ScopeModel  UsageScopeType = "MODEL"
)

// UsageCounter accumulates consumption of quota entitlements per scope and
// time window.
type UsageCounter struct {
	ID             string         `json:"id" gorm:"type:uuid;primaryKey"`
	ScopeType      UsageScopeType `json:"scope_type" gorm:"type:varchar(16);not null;uniqueIndex:idx_usage_window,priority:1"`
	ScopeID        string         `json:"scope_id" gorm:"not null;uniqueIndex:idx_usage_window,priority:2"`
	EntitlementKey string         `json:"entitlement_key" gorm:"not null;uniqueIndex:idx_usage_window,priority:3"`
	WindowStart    time.Time      `json:"window_start" gorm:"not null;uniqueIndex:idx_usage_window,priority:4"`
	Count          int64          `json:"count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *UsageCounter) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
