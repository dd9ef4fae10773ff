package entitlement

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"llmarena_backend/internal/model"
)

type QuotaWindow string

const (
	WindowMinute QuotaWindow = "minute"
	WindowHour   QuotaWindow = "hour"
	WindowDay    QuotaWindow = "day"
	WindowMonth  QuotaWindow = "month"
)

// WindowStart truncates now to the start of the given quota window.
func WindowStart(window QuotaWindow, now time.Time) time.Time {
	switch window {
	case WindowMinute:
		return now.Truncate(time.Minute)
	case WindowHour:
		return now.Truncate(time.Hour)
	case WindowDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

func windowEnd(window QuotaWindow, start time.Time) time.Time {
	switch window {
	case WindowMinute:
		return start.Add(time.Minute)
	case WindowHour:
		return start.Add(time.Hour)
	case WindowDay:
		return start.Add(24 * time.Hour)
	default:
		return start.AddDate(0, 1, 0)
	}
}

type UsageInput struct {
	EntitlementKey string
	ScopeType      model.UsageScopeType
	ScopeID        string
	Window         QuotaWindow
	Amount         int64
}

// IncrementUsage bumps the counter for the current window, creating the row
// on first use. The conflict target is the unique window composite, so
// concurrent increments are atomic.
func IncrementUsage(db *gorm.DB, input UsageInput) error {
	amount := input.Amount
	if amount <= 0 {
		amount = 1
	}

	counter := model.UsageCounter{
		ScopeType:      input.ScopeType,
		ScopeID:        input.ScopeID,
		EntitlementKey: input.EntitlementKey,
		WindowStart:    WindowStart(input.Window, time.Now()),
		Count:          amount,
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "scope_type"}, {Name: "scope_id"}, {Name: "entitlement_key"}, {Name: "window_start"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("usage_counters.count + ?", amount),
		}),
	}).Create(&counter).Error
}

type QuotaCheck struct {
	EntitlementKey string
	ScopeType      model.UsageScopeType
	ScopeID        string
	Limit          int64
	Window         QuotaWindow
}

type QuotaResult struct {
	Allowed         bool       `json:"allowed"`
	Remaining       int64      `json:"remaining"`
	ResetAt         *time.Time `json:"reset_at"`
	OverageBehavior string     `json:"overage_behavior,omitempty"`
}

// CheckQuota reads the current window's counter without consuming.
func CheckQuota(db *gorm.DB, input QuotaCheck) (QuotaResult, error) {
	start := WindowStart(input.Window, time.Now())

	var counter model.UsageCounter
	err := db.Where(
		"scope_type = ? AND scope_id = ? AND entitlement_key = ? AND window_start = ?",
		input.ScopeType, input.ScopeID, input.EntitlementKey, start,
	).First(&counter).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return QuotaResult{}, err
	}

	remaining := input.Limit - counter.Count
	if remaining < 0 {
		remaining = 0
	}
	resetAt := windowEnd(input.Window, start)

	return QuotaResult{
		Allowed:   counter.Count < input.Limit,
		Remaining: remaining,
		ResetAt:   &resetAt,
	}, nil
}
