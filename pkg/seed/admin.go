package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/config"
	"llmarena_backend/pkg/entitlement"
)

// EnsureAdminUser upserts the bootstrap admin account by email and links it
// to the SuperAdmin role.
func EnsureAdminUser(db *gorm.DB, cfg config.AdminConfig) (*model.User, error) {
	var admin model.User
	err := db.Where("email = ?", cfg.Email).First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin = model.User{
			Email:         cfg.Email,
			Password:      string(hash),
			Role:          model.RoleAdmin,
			Tier:          model.SubscriptionTier(cfg.Tier),
			EmailVerified: true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	} else if err := db.Model(&admin).Update("email_verified", true).Error; err != nil {
		return nil, err
	}

	var superAdmin model.RbacRole
	if err := db.Where("name = ?", "SuperAdmin").First(&superAdmin).Error; err == nil {
		if err := LinkUserRole(db, admin.ID, superAdmin.ID); err != nil {
			return nil, err
		}
	}

	log.Printf("Admin user ready: %s", admin.Email)
	return &admin, nil
}

// SeedSubscriptionPlans creates the default plan ladder when absent.
func SeedSubscriptionPlans(db *gorm.DB) error {
	plans := []model.SubscriptionPlan{
		{Name: "Free", Description: "Casual matches and public models", Level: 1},
		{Name: "Pro", Description: "Higher quotas and private models", Level: 2},
		{Name: "Enterprise", Description: "Org-wide billing and custom engines", Level: 3},
	}

	for _, plan := range plans {
		result := db.Where(model.SubscriptionPlan{Name: plan.Name}).FirstOrCreate(&plan)
		if result.Error != nil {
			return result.Error
		}
	}

	log.Println("Subscription plans seeded")
	return nil
}

// SeedDemoModels registers a few mock engines so fresh environments have
// something to seat in matches.
func SeedDemoModels(db *gorm.DB, ownerID string) error {
	demos := []model.AIModel{
		{
			Name:         "Negotiator Bot Alpha",
			Description:  "A simple deterministic bot that favors splitting.",
			APIProvider:  "mock",
			APIModelID:   "mock-v1",
			OwnerID:      ownerID,
			Capabilities: entitlement.MarshalValue([]string{"iterated-negotiation", "chutes_and_ladders"}),
		},
		{
			Name:         "Aggressive Trader Beta",
			Description:  "A bot that pushes for 60/40 splits.",
			APIProvider:  "mock",
			APIModelID:   "mock-v1",
			OwnerID:      ownerID,
			Capabilities: entitlement.MarshalValue([]string{"iterated-negotiation"}),
		},
		{
			Name:         "OpenAI GPT-4 (Stub)",
			Description:  "Stub for GPT-4 integration.",
			APIProvider:  "openai",
			APIModelID:   "gpt-4",
			OwnerID:      ownerID,
			Capabilities: entitlement.MarshalValue([]string{"iterated-negotiation", "chess", "chutes_and_ladders", "texas_holdem", "blackjack"}),
		},
		{
			Name:         "Grandmaster Mock A",
			Description:  "A mock chess engine.",
			APIProvider:  "mock",
			APIModelID:   "mock-chess-v1",
			OwnerID:      ownerID,
			Capabilities: entitlement.MarshalValue([]string{"chess"}),
		},
		{
			Name:         "Grandmaster Mock B",
			Description:  "Another mock chess engine.",
			APIProvider:  "mock",
			APIModelID:   "mock-chess-v1",
			OwnerID:      ownerID,
			Capabilities: entitlement.MarshalValue([]string{"chess", "texas_holdem"}),
		},
	}

	for _, demo := range demos {
		result := db.Where(model.AIModel{Name: demo.Name}).FirstOrCreate(&demo)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}
