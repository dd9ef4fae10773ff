package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"llmarena_backend/internal/model"
)

func Connect(dsn string) (*gorm.DB, error) {
	pgConfig := postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}

	gormConfig := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Error),
		PrepareStmt: false,
	}

	db, err := gorm.Open(postgres.New(pgConfig), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}

// Migrate creates or updates tables one by one so a single failing model does
// not abort the rest.
func Migrate(db *gorm.DB, models ...interface{}) error {
	for _, m := range models {
		if !db.Migrator().HasTable(m) {
			if err := db.Migrator().CreateTable(m); err != nil {
				return err
			}
			log.Printf("Created table for %T\n", m)
		} else {
			if err := db.Migrator().AutoMigrate(m); err != nil {
				return err
			}
		}
	}
	return nil
}

// AllModels lists every persisted entity for migration.
func AllModels() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Organization{},
		&model.SubscriptionPlan{},
		&model.SubscriptionPlanPrice{},
		&model.SubscriptionPlanStripeProduct{},
		&model.StripeSubscription{},
		&model.SubscriptionEntitlement{},
		&model.SubscriptionTierEntitlement{},
		&model.SubscriptionPlanEntitlement{},
		&model.EntitlementOverride{},
		&model.UsageCounter{},
		&model.GameDefinition{},
		&model.GameSetting{},
		&model.GameUISchema{},
		&model.GameRelease{},
		&model.RbacRole{},
		&model.RbacPermission{},
		&model.RbacGroup{},
		&model.RbacRolePermission{},
		&model.RbacGroupRole{},
		&model.RbacUserGroup{},
		&model.RbacUserRole{},
		&model.RbacUserPermissionOverride{},
		&model.AIModel{},
	}
}
