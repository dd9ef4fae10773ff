package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StripeMode string

const (
	ModeTest StripeMode = "TEST"
	ModeLive StripeMode = "LIVE"
)

type SubscriptionPlan struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Level       int    `json:"level" gorm:"not null;default:1"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Prices   []SubscriptionPlanPrice         `json:"prices,omitempty" gorm:"foreignKey:PlanID"`
	Products []SubscriptionPlanStripeProduct `json:"-" gorm:"foreignKey:PlanID"`
}

func (p *SubscriptionPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// SubscriptionPlanPrice maps a Stripe price to an internal plan. Mode keeps
// sandbox and production price ids from colliding.
type SubscriptionPlanPrice struct {
	ID            string     `json:"id" gorm:"type:uuid;primaryKey"`
	PlanID        string     `json:"plan_id" gorm:"type:uuid;not null"`
	StripePriceID string     `json:"stripe_price_id" gorm:"not null;uniqueIndex:idx_plan_price_mode,priority:1"`
	Mode          StripeMode `json:"mode" gorm:"type:varchar(8);not null;uniqueIndex:idx_plan_price_mode,priority:2"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *SubscriptionPlanPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type SubscriptionPlanStripeProduct struct {
	ID              string     `json:"id" gorm:"type:uuid;primaryKey"`
	PlanID          string     `json:"plan_id" gorm:"type:uuid;not null"`
	StripeProductID string     `json:"stripe_product_id" gorm:"not null;uniqueIndex:idx_plan_product_mode,priority:1"`
	Mode            StripeMode `json:"mode" gorm:"type:varchar(8);not null;uniqueIndex:idx_plan_product_mode,priority:2"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *SubscriptionPlanStripeProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
