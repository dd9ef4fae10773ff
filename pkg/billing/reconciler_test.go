package billing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	return db
}

func subscriptionFixture(id string, status stripe.SubscriptionStatus, priceID string, metadata map[string]string) *stripe.Subscription {
	sub := &stripe.Subscription{
		ID:       id,
		Status:   status,
		Customer: &stripe.Customer{ID: "cus_123"},
		Metadata: metadata,
	}
	if priceID != "" {
		sub.Items = &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{{
				Price:    &stripe.Price{ID: priceID, Product: &stripe.Product{ID: "prod_123"}},
				Quantity: 1,
			}},
		}
	}
	return sub
}

func createPlanWithPrice(t *testing.T, db *gorm.DB, level int, priceID string, mode model.StripeMode) model.SubscriptionPlan {
	t.Helper()
	plan := model.SubscriptionPlan{Name: fmt.Sprintf("Plan L%d", level), Level: level, IsActive: true}
	require.NoError(t, db.Create(&plan).Error)
	require.NoError(t, db.Create(&model.SubscriptionPlanPrice{
		PlanID: plan.ID, StripePriceID: priceID, Mode: mode,
	}).Error)
	return plan
}

func TestApplyActiveSubscriptionGrantsPlanAndTier(t *testing.T) {
	db := newTestDB(t)

	plan := createPlanWithPrice(t, db, 2, "price_pro", model.ModeTest)
	user := model.User{Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	sub := subscriptionFixture("sub_1", stripe.SubscriptionStatusActive, "price_pro",
		map[string]string{"user_id": user.ID})

	require.NoError(t, NewReconciler(db).Apply(sub, model.ModeTest))

	var updated model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&updated).Error)
	require.NotNil(t, updated.PlanID)
	assert.Equal(t, plan.ID, *updated.PlanID)
	assert.Equal(t, model.TierPro, updated.Tier)
	assert.Equal(t, "cus_123", updated.StripeCustomerID)

	var mirror model.StripeSubscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_1").First(&mirror).Error)
	assert.Equal(t, "active", mirror.Status)
	assert.Equal(t, model.TargetUser, mirror.TargetType)
	assert.Equal(t, user.ID, mirror.TargetID)
	assert.NotEmpty(t, mirror.Raw)
}

func TestApplyCanceledSubscriptionRevokes(t *testing.T) {
	db := newTestDB(t)

	plan := createPlanWithPrice(t, db, 2, "price_pro", model.ModeTest)
	user := model.User{Email: "u@example.com", Password: "x", PlanID: &plan.ID, Tier: model.TierPro}
	require.NoError(t, db.Create(&user).Error)

	sub := subscriptionFixture("sub_1", stripe.SubscriptionStatusCanceled, "price_pro",
		map[string]string{"user_id": user.ID})

	require.NoError(t, NewReconciler(db).Apply(sub, model.ModeTest))

	var updated model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&updated).Error)
	assert.Nil(t, updated.PlanID)
	assert.Equal(t, model.TierFree, updated.Tier)
}

func TestApplyTrialingCountsAsEntitled(t *testing.T) {
	db := newTestDB(t)

	createPlanWithPrice(t, db, 3, "price_ent", model.ModeTest)
	user := model.User{Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	sub := subscriptionFixture("sub_1", stripe.SubscriptionStatusTrialing, "price_ent",
		map[string]string{"user_id": user.ID})

	require.NoError(t, NewReconciler(db).Apply(sub, model.ModeTest))

	var updated model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&updated).Error)
	assert.Equal(t, model.TierEnterprise, updated.Tier)
}

func TestApplyPastDueLeavesEntitlementsAlone(t *testing.T) {
	db := newTestDB(t)

	plan := createPlanWithPrice(t, db, 2, "price_pro", model.ModeTest)
	user := model.User{Email: "u@example.com", Password: "x", PlanID: &plan.ID, Tier: model.TierPro}
	require.NoError(t, db.Create(&user).Error)

	sub := subscriptionFixture("sub_1", stripe.SubscriptionStatusPastDue, "price_pro",
		map[string]string{"user_id": user.ID})

	require.NoError(t, NewReconciler(db).Apply(sub, model.ModeTest))

	var updated model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&updated).Error)
	require.NotNil(t, updated.PlanID)
	assert.Equal(t, model.TierPro, updated.Tier, "grace statuses keep the current plan")

	var mirror model.StripeSubscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_1").First(&mirror).Error)
	assert.Equal(t, "past_due", mirror.Status, "mirror still records the status")
}

func TestApplyOrgTarget(t *testing.T) {
	db := newTestDB(t)

	plan := createPlanWithPrice(t, db, 3, "price_ent", model.ModeTest)
	org := model.Organization{Name: "Acme"}
	require.NoError(t, db.Create(&org).Error)

	sub := subscriptionFixture("sub_1", stripe.SubscriptionStatusActive, "price_ent",
		map[string]string{"target_type": "org", "org_id": org.ID, "user_id": "ignored"})

	require.NoError(t, NewReconciler(db).Apply(sub, model.ModeTest))

	var updated model.Organization
	require.NoError(t, db.Where("id = ?", org.ID).First(&updated).Error)
	require.NotNil(t, updated.PlanID)
	assert.Equal(t, plan.ID, *updated.PlanID)
	assert.Equal(t, "cus_123", updated.StripeCustomerID)

	var mirror model.StripeSubscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_1").First(&mirror).Error)
	assert.Equal(t, model.TargetOrg, mirror.TargetType)
}

func TestApplyFallsBackToCustomerIDTarget(t *testing.T) {
	db := newTestDB(t)

	sub := subscriptionFixture("sub_1", stripe.SubscriptionStatusActive, "", nil)

	require.NoError(t, NewReconciler(db).Apply(sub, model.ModeTest))

	var mirror model.StripeSubscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_1").First(&mirror).Error)
	assert.Equal(t, model.TargetUser, mirror.TargetType)
	assert.Equal(t, "cus_123", mirror.TargetID)
}

func TestApplyProductMapFallback(t *testing.T) {
	db := newTestDB(t)

	// The price is unmapped but the product is; the product map resolves it.
	plan := model.SubscriptionPlan{Name: "Pro", Level: 2, IsActive: true}
	require.NoError(t, db.Create(&plan).Error)
	require.NoError(t, db.Create(&model.SubscriptionPlanStripeProduct{
		PlanID: plan.ID, StripeProductID: "prod_123", Mode: model.ModeTest,
	}).Error)

	user := model.User{Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	sub := subscriptionFixture("sub_1", stripe.SubscriptionStatusActive, "price_unmapped",
		map[string]string{"user_id": user.ID})

	require.NoError(t, NewReconciler(db).Apply(sub, model.ModeTest))

	var updated model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&updated).Error)
	require.NotNil(t, updated.PlanID)
	assert.Equal(t, plan.ID, *updated.PlanID)
	assert.Equal(t, model.TierPro, updated.Tier)
}

func TestApplyMetadataPlanFallback(t *testing.T) {
	db := newTestDB(t)

	plan := model.SubscriptionPlan{Name: "Pro", Level: 2, IsActive: true}
	require.NoError(t, db.Create(&plan).Error)
	user := model.User{Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	// No price mapping; metadata names the plan directly.
	sub := subscriptionFixture("sub_1", stripe.SubscriptionStatusActive, "price_unmapped",
		map[string]string{"user_id": user.ID, "plan_id": plan.ID})

	require.NoError(t, NewReconciler(db).Apply(sub, model.ModeTest))

	var updated model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&updated).Error)
	require.NotNil(t, updated.PlanID)
	assert.Equal(t, plan.ID, *updated.PlanID)
}

func TestApplyModeIsolation(t *testing.T) {
	db := newTestDB(t)

	// The price is only mapped in TEST mode.
	createPlanWithPrice(t, db, 2, "price_pro", model.ModeTest)
	user := model.User{Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	sub := subscriptionFixture("sub_1", stripe.SubscriptionStatusActive, "price_pro",
		map[string]string{"user_id": user.ID})

	require.NoError(t, NewReconciler(db).Apply(sub, model.ModeLive))

	var updated model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&updated).Error)
	assert.Nil(t, updated.PlanID, "a TEST price must not resolve in LIVE mode")
	assert.Equal(t, model.TierFree, updated.Tier)

	var mirror model.StripeSubscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_1").First(&mirror).Error)
	assert.Nil(t, mirror.PlanID)
	assert.Equal(t, model.ModeLive, mirror.Mode)
}

func TestApplyUpsertsSingleMirrorRow(t *testing.T) {
	db := newTestDB(t)

	createPlanWithPrice(t, db, 2, "price_pro", model.ModeTest)
	user := model.User{Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	active := subscriptionFixture("sub_1", stripe.SubscriptionStatusActive, "price_pro",
		map[string]string{"user_id": user.ID})
	canceled := subscriptionFixture("sub_1", stripe.SubscriptionStatusCanceled, "price_pro",
		map[string]string{"user_id": user.ID})

	r := NewReconciler(db)
	require.NoError(t, r.Apply(active, model.ModeTest))
	require.NoError(t, r.Apply(canceled, model.ModeTest))

	var count int64
	require.NoError(t, db.Model(&model.StripeSubscription{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var mirror model.StripeSubscription
	require.NoError(t, db.Where("stripe_subscription_id = ?", "sub_1").First(&mirror).Error)
	assert.Equal(t, "canceled", mirror.Status)
}

func TestApplyMissingUserIsNotAnError(t *testing.T) {
	db := newTestDB(t)

	createPlanWithPrice(t, db, 2, "price_pro", model.ModeTest)

	sub := subscriptionFixture("sub_1", stripe.SubscriptionStatusActive, "price_pro",
		map[string]string{"user_id": "no-such-user"})

	assert.NoError(t, NewReconciler(db).Apply(sub, model.ModeTest))
}

func TestSecretsOrder(t *testing.T) {
	secrets := Secrets("whsec_live", "whsec_test")
	require.Len(t, secrets, 2)
	assert.Equal(t, model.ModeLive, secrets[0].Mode)
	assert.Equal(t, model.ModeTest, secrets[1].Mode)

	assert.Len(t, Secrets("", "whsec_test"), 1)
	assert.Empty(t, Secrets("", ""))
}

func TestVerifyEventNotConfigured(t *testing.T) {
	_, _, err := VerifyEvent([]byte("{}"), "sig", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
