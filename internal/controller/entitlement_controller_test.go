package controller

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/entitlement"
	"llmarena_backend/pkg/utils/jwt"
)

func TestExportUsageCSV(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, entitlement.IncrementUsage(db, entitlement.UsageInput{
		EntitlementKey: "matches.quota",
		ScopeType:      model.ScopeUser,
		ScopeID:        "u1",
		Window:         entitlement.WindowDay,
		Amount:         3,
	}))
	// Another user's counters must not leak into the export.
	require.NoError(t, entitlement.IncrementUsage(db, entitlement.UsageInput{
		EntitlementKey: "matches.quota",
		ScopeType:      model.ScopeUser,
		ScopeID:        "u2",
		Window:         entitlement.WindowDay,
		Amount:         7,
	}))

	ec := NewEntitlementController(db)
	app := fiber.New()
	app.Get("/export", func(c *fiber.Ctx) error {
		c.Locals("user", &jwt.Claims{UserID: "u1", Email: "u@example.com"})
		return c.Next()
	}, ec.ExportUsage)

	resp, err := app.Test(httptest.NewRequest("GET", "/export", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "entitlement_key,window_start,count")
	assert.Contains(t, string(body), "matches.quota")
	assert.Contains(t, string(body), ",3")
	assert.NotContains(t, string(body), ",7")
}
