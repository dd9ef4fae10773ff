package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID               string  `json:"id" gorm:"type:uuid;primaryKey"`
	Name             string  `json:"name" gorm:"not null"`
	PlanID           *string `json:"plan_id" gorm:"type:uuid"`
	StripeCustomerID string  `json:"stripe_customer_id" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Plan *SubscriptionPlan `json:"-" gorm:"foreignKey:PlanID"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
