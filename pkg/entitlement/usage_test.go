package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llmarena_backend/internal/model"
)

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 8, 15, 13, 42, 37, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 8, 15, 13, 42, 0, 0, time.UTC), WindowStart(WindowMinute, now))
	assert.Equal(t, time.Date(2026, 8, 15, 13, 0, 0, 0, time.UTC), WindowStart(WindowHour, now))
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), WindowStart(WindowDay, now))
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), WindowStart(WindowMonth, now))
}

func TestIncrementUsageAccumulates(t *testing.T) {
	db := newTestDB(t)

	input := UsageInput{
		EntitlementKey: "matches.quota",
		ScopeType:      model.ScopeUser,
		ScopeID:        "u1",
		Window:         WindowDay,
	}
	require.NoError(t, IncrementUsage(db, input))
	require.NoError(t, IncrementUsage(db, input))

	var counter model.UsageCounter
	require.NoError(t, db.Where("scope_id = ?", "u1").First(&counter).Error)
	assert.Equal(t, int64(2), counter.Count)

	var count int64
	require.NoError(t, db.Model(&model.UsageCounter{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "one row per window")
}

func TestCheckQuota(t *testing.T) {
	db := newTestDB(t)

	check := QuotaCheck{
		EntitlementKey: "matches.quota",
		ScopeType:      model.ScopeUser,
		ScopeID:        "u1",
		Limit:          2,
		Window:         WindowDay,
	}

	result, err := CheckQuota(db, check)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, int64(2), result.Remaining)
	require.NotNil(t, result.ResetAt)

	for i := 0; i < 2; i++ {
		require.NoError(t, IncrementUsage(db, UsageInput{
			EntitlementKey: "matches.quota",
			ScopeType:      model.ScopeUser,
			ScopeID:        "u1",
			Window:         WindowDay,
		}))
	}

	result, err = CheckQuota(db, check)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, int64(0), result.Remaining)
}

func TestCheckQuotaScopesAreIsolated(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, IncrementUsage(db, UsageInput{
		EntitlementKey: "matches.quota",
		ScopeType:      model.ScopeUser,
		ScopeID:        "u1",
		Window:         WindowDay,
	}))

	result, err := CheckQuota(db, QuotaCheck{
		EntitlementKey: "matches.quota",
		ScopeType:      model.ScopeUser,
		ScopeID:        "u2",
		Limit:          1,
		Window:         WindowDay,
	})
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
