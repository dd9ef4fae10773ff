package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TargetType string

const (
	TargetUser TargetType = "USER"
	TargetOrg  TargetType = "ORG"
)

// StripeSubscription mirrors one external subscription object. Rows are
// written exclusively by the webhook reconciler, one per Stripe subscription
// id, upserted on every relevant event.
type StripeSubscription struct {
	ID                   string     `json:"id" gorm:"type:uuid;primaryKey"`
	StripeSubscriptionID string     `json:"stripe_subscription_id" gorm:"uniqueIndex;not null"`
	StripeCustomerID     string     `json:"stripe_customer_id" gorm:"index"`
	Mode                 StripeMode `json:"mode" gorm:"type:varchar(8);not null"`
	Status               string     `json:"status" gorm:"not null"`

	PlanID    *string `json:"plan_id" gorm:"type:uuid"`
	PriceID   *string `json:"price_id"`
	ProductID *string `json:"product_id"`

	TargetType TargetType `json:"target_type" gorm:"type:varchar(8);not null;index:idx_stripe_sub_target"`
	TargetID   string     `json:"target_id" gorm:"not null;index:idx_stripe_sub_target"`

	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	CanceledAt         *time.Time `json:"canceled_at"`
	TrialEnd           *time.Time `json:"trial_end"`
	Quantity           *int64     `json:"quantity"`

	// Raw payload snapshot kept for auditability.
	Raw datatypes.JSON `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *StripeSubscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
