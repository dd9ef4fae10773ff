package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "FREE"
	TierPro        SubscriptionTier = "PRO"
	TierEnterprise SubscriptionTier = "ENTERPRISE"
)

type User struct {
	ID       string   `json:"id" gorm:"type:uuid;primaryKey"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null"`
	Password string   `json:"-" gorm:"not null"`
	Role     UserRole `json:"role" gorm:"type:varchar(16);default:'USER'"`

	Tier             SubscriptionTier `json:"tier" gorm:"type:varchar(16);default:'FREE'"`
	PlanID           *string          `json:"plan_id" gorm:"type:uuid"`
	OrgID            *string          `json:"org_id" gorm:"type:uuid"`
	StripeCustomerID string           `json:"stripe_customer_id" gorm:"index"`

	EmailVerified bool `json:"email_verified" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Plan         *SubscriptionPlan `json:"-" gorm:"foreignKey:PlanID"`
	Organization *Organization     `json:"-" gorm:"foreignKey:OrgID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
