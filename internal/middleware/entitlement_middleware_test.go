package middleware

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/database"
	"llmarena_backend/pkg/entitlement"
	"llmarena_backend/pkg/utils/jwt"
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

func authedGet(t *testing.T, app *fiber.App, path, userID string) int {
	t.Helper()

	token, err := jwt.GenerateToken(userID, "u@example.com", "USER")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireEntitlementBlocksWithoutGrant(t *testing.T) {
	db := newTestDB(t)

	def := model.SubscriptionEntitlement{
		Key:          "export.csv",
		ValueType:    model.ValueBool,
		DefaultValue: entitlement.MarshalValue(false),
	}
	require.NoError(t, db.Create(&def).Error)

	user := model.User{Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Get("/export", AuthMiddleware(), RequireEntitlement(db, "export.csv"),
		func(c *fiber.Ctx) error { return c.SendString("ok") })

	assert.Equal(t, fiber.StatusForbidden, authedGet(t, app, "/export", user.ID))

	require.NoError(t, entitlement.SetOverride(db, model.TargetUser, user.ID, "export.csv", true, true, "admin"))
	assert.Equal(t, fiber.StatusOK, authedGet(t, app, "/export", user.ID))
}

func TestEnforceQuotaBlocksWhenExhausted(t *testing.T) {
	db := newTestDB(t)

	def := model.SubscriptionEntitlement{
		Key:       "api.requests.quota",
		ValueType: model.ValueJSON,
		DefaultValue: entitlement.MarshalValue(map[string]interface{}{
			"limit": float64(2), "window": "day", "scope": "user", "overage_behavior": "block",
		}),
	}
	require.NoError(t, db.Create(&def).Error)

	user := model.User{Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Get("/ping", AuthMiddleware(), EnforceQuota(db, "api.requests.quota"),
		func(c *fiber.Ctx) error { return c.SendString("ok") })

	assert.Equal(t, fiber.StatusOK, authedGet(t, app, "/ping", user.ID))
	assert.Equal(t, fiber.StatusOK, authedGet(t, app, "/ping", user.ID))
	assert.Equal(t, fiber.StatusTooManyRequests, authedGet(t, app, "/ping", user.ID))

	var counter model.UsageCounter
	require.NoError(t, db.Where("scope_id = ?", user.ID).First(&counter).Error)
	assert.Equal(t, int64(2), counter.Count, "blocked requests are not counted")
}

func TestEnforceQuotaAllowsWithoutPolicy(t *testing.T) {
	db := newTestDB(t)

	user := model.User{Email: "u@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	app := fiber.New()
	app.Get("/ping", AuthMiddleware(), EnforceQuota(db, "api.requests.quota"),
		func(c *fiber.Ctx) error { return c.SendString("ok") })

	assert.Equal(t, fiber.StatusOK, authedGet(t, app, "/ping", user.ID))
}
