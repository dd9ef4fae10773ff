package billing

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v74"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/entitlement"
)

// Reconciler mirrors external subscription state into the local database.
// All writes go through atomic per-key upserts; concurrent deliveries for the
// same subscription id are last-write-wins.
type Reconciler struct {
	db *gorm.DB
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{db: db}
}

type Target struct {
	Type model.TargetType
	ID   string
}

func customerID(sub *stripe.Subscription) string {
	if sub.Customer == nil {
		return ""
	}
	return sub.Customer.ID
}

// resolveTarget decides whose account the event mutates. Metadata explicitly
// naming an org wins, then a user id, then a generic target id or the Stripe
// customer id with the target type defaulting to USER.
func resolveTarget(sub *stripe.Subscription) Target {
	metadata := sub.Metadata
	if strings.ToUpper(metadata["target_type"]) == "ORG" && metadata["org_id"] != "" {
		return Target{Type: model.TargetOrg, ID: metadata["org_id"]}
	}
	if metadata["user_id"] != "" {
		return Target{Type: model.TargetUser, ID: metadata["user_id"]}
	}
	id := metadata["target_id"]
	if id == "" {
		id = customerID(sub)
	}
	return Target{Type: model.TargetUser, ID: id}
}

func unixTime(ts int64) *time.Time {
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}

func isEntitledStatus(status stripe.SubscriptionStatus) bool {
	return status == stripe.SubscriptionStatusActive || status == stripe.SubscriptionStatusTrialing
}

func isRevokedStatus(status stripe.SubscriptionStatus) bool {
	switch status {
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusIncompleteExpired:
		return true
	}
	return false
}

// Apply reconciles one subscription payload. It upserts the local mirror row
// and applies entitlement side effects per the subscription status.
func (r *Reconciler) Apply(sub *stripe.Subscription, mode model.StripeMode) error {
	var priceID, productID string
	var quantity *int64
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		if item.Price != nil {
			priceID = item.Price.ID
			if item.Price.Product != nil {
				productID = item.Price.Product.ID
			}
		}
		if item.Quantity != 0 {
			q := item.Quantity
			quantity = &q
		}
	}

	// Plan resolution order: price map, then product map, then metadata.
	planID := ""
	if priceID != "" {
		var planPrice model.SubscriptionPlanPrice
		err := r.db.Where("stripe_price_id = ? AND mode = ?", priceID, mode).First(&planPrice).Error
		if err == nil {
			planID = planPrice.PlanID
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
	}
	if planID == "" && productID != "" {
		var planProduct model.SubscriptionPlanStripeProduct
		err := r.db.Where("stripe_product_id = ? AND mode = ?", productID, mode).First(&planProduct).Error
		if err == nil {
			planID = planProduct.PlanID
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
	}
	if planID == "" {
		planID = sub.Metadata["plan_id"]
	}

	target := resolveTarget(sub)

	var plan *model.SubscriptionPlan
	if planID != "" {
		var found model.SubscriptionPlan
		err := r.db.Where("id = ?", planID).First(&found).Error
		if err == nil {
			plan = &found
		} else if err != gorm.ErrRecordNotFound {
			return err
		}
	}

	custID := customerID(sub)

	// Best effort: an update matching zero rows is not an error.
	if target.ID != "" && custID != "" {
		switch target.Type {
		case model.TargetUser:
			if err := r.db.Model(&model.User{}).Where("id = ?", target.ID).
				Update("stripe_customer_id", custID).Error; err != nil {
				return err
			}
		case model.TargetOrg:
			if err := r.db.Model(&model.Organization{}).Where("id = ?", target.ID).
				Update("stripe_customer_id", custID).Error; err != nil {
				return err
			}
		}
	}

	raw, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	targetID := target.ID
	if targetID == "" {
		targetID = custID
	}

	var rowPlanID, rowPriceID, rowProductID *string
	if planID != "" {
		rowPlanID = &planID
	}
	if priceID != "" {
		rowPriceID = &priceID
	}
	if productID != "" {
		rowProductID = &productID
	}

	row := model.StripeSubscription{
		StripeSubscriptionID: sub.ID,
		StripeCustomerID:     custID,
		Mode:                 mode,
		Status:               string(sub.Status),
		PlanID:               rowPlanID,
		PriceID:              rowPriceID,
		ProductID:            rowProductID,
		TargetType:           target.Type,
		TargetID:             targetID,
		CurrentPeriodStart:   unixTime(sub.CurrentPeriodStart),
		CurrentPeriodEnd:     unixTime(sub.CurrentPeriodEnd),
		CancelAtPeriodEnd:    sub.CancelAtPeriodEnd,
		CanceledAt:           unixTime(sub.CanceledAt),
		TrialEnd:             unixTime(sub.TrialEnd),
		Quantity:             quantity,
		Raw:                  datatypes.JSON(raw),
	}

	err = r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stripe_subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"stripe_customer_id", "mode", "status", "plan_id", "price_id", "product_id",
			"target_type", "target_id", "current_period_start", "current_period_end",
			"cancel_at_period_end", "canceled_at", "trial_end", "quantity", "raw", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return err
	}

	if plan != nil && isEntitledStatus(sub.Status) {
		switch target.Type {
		case model.TargetUser:
			err = r.db.Model(&model.User{}).Where("id = ?", target.ID).
				Updates(map[string]interface{}{
					"plan_id": plan.ID,
					"tier":    entitlement.TierFromLevel(plan.Level),
				}).Error
		case model.TargetOrg:
			err = r.db.Model(&model.Organization{}).Where("id = ?", target.ID).
				Update("plan_id", plan.ID).Error
		}
		if err != nil {
			return err
		}
	}

	if target.Type == model.TargetUser && isRevokedStatus(sub.Status) {
		err = r.db.Model(&model.User{}).Where("id = ?", target.ID).
			Updates(map[string]interface{}{
				"plan_id": nil,
				"tier":    model.TierFree,
			}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
