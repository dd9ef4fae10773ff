package entitlement

import (
	"time"

	"gorm.io/gorm"

	"llmarena_backend/internal/model"
)

// Source records which layer produced the effective value.
type Source string

const (
	SourcePlan         Source = "plan"
	SourceOrgOverride  Source = "org_override"
	SourceUserOverride Source = "user_override"
	SourceDefault      Source = "default"
)

type Resolved struct {
	Enabled bool        `json:"enabled"`
	Value   interface{} `json:"value"`
	Source  Source      `json:"source"`
}

type ResolveInput struct {
	UserID   string
	OrgID    string
	PlanID   string
	PlanTier model.SubscriptionTier
}

// Resolver computes effective entitlements from plan defaults plus org and
// user overrides. Precedence: plan < org override < user override.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Entitlements is the resolved view for one target.
type Entitlements struct {
	Resolved map[string]Resolved

	db *gorm.DB
}

func withinWindow(now time.Time, startsAt, endsAt *time.Time) bool {
	if startsAt != nil && now.Before(*startsAt) {
		return false
	}
	if endsAt != nil && now.After(*endsAt) {
		return false
	}
	return true
}

func (r *Resolver) pickPlanByTier(tier model.SubscriptionTier) *model.SubscriptionPlan {
	if tier == "" {
		return nil
	}
	var plan model.SubscriptionPlan
	err := r.db.Where("is_active = ? AND level >= ?", true, TierToLevel(tier)).
		Order("level asc").
		First(&plan).Error
	if err != nil {
		return nil
	}
	return &plan
}

func (r *Resolver) resolvePlanID(input ResolveInput) (string, error) {
	if input.PlanID != "" {
		return input.PlanID, nil
	}

	if input.UserID != "" {
		var user model.User
		err := r.db.Preload("Organization").Where("id = ?", input.UserID).First(&user).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return "", err
		}
		if err == nil {
			if user.Organization != nil && user.Organization.PlanID != nil {
				return *user.Organization.PlanID, nil
			}
			if user.PlanID != nil {
				return *user.PlanID, nil
			}
			tier := user.Tier
			if tier == "" {
				tier = input.PlanTier
			}
			if plan := r.pickPlanByTier(tier); plan != nil {
				return plan.ID, nil
			}
			return "", nil
		}
	}

	if plan := r.pickPlanByTier(input.PlanTier); plan != nil {
		return plan.ID, nil
	}
	return "", nil
}

func (r *Resolver) Resolve(input ResolveInput) (*Entitlements, error) {
	now := time.Now()

	var definitions []model.SubscriptionEntitlement
	if err := r.db.Preload("Plans").Find(&definitions).Error; err != nil {
		return nil, err
	}

	var overrides []model.EntitlementOverride
	query := r.db.Where("1 = 0")
	if input.OrgID != "" {
		query = query.Or("target_type = ? AND target_id = ?", model.TargetOrg, input.OrgID)
	}
	if input.UserID != "" {
		query = query.Or("target_type = ? AND target_id = ?", model.TargetUser, input.UserID)
	}
	if input.OrgID != "" || input.UserID != "" {
		if err := r.db.Where(query).Find(&overrides).Error; err != nil {
			return nil, err
		}
	}

	planID, err := r.resolvePlanID(input)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]Resolved, len(definitions))

	for _, def := range definitions {
		var planEnt *model.SubscriptionPlanEntitlement
		if planID != "" {
			for i := range def.Plans {
				if def.Plans[i].PlanID == planID {
					planEnt = &def.Plans[i]
					break
				}
			}
		}

		enabled := false
		value := UnmarshalValue(def.DefaultValue)
		source := SourceDefault
		if planEnt != nil {
			enabled = planEnt.Enabled
			source = SourcePlan
			if planValue := UnmarshalValue(planEnt.Value); planValue != nil {
				value = planValue
			} else if def.ValueType == model.ValueBool {
				value = enabled
			}
		}

		applyOverride := func(targetType model.TargetType, overrideSource Source) {
			for i := range overrides {
				o := &overrides[i]
				if o.EntitlementKey != def.Key || o.TargetType != targetType || !withinWindow(now, o.StartsAt, o.EndsAt) {
					continue
				}
				enabled = o.Enabled
				overrideValue := UnmarshalValue(o.Value)
				if overrideValue == nil && def.ValueType == model.ValueBool {
					value = enabled
				} else if overrideValue != nil {
					value = overrideValue
				}
				source = overrideSource
				return
			}
		}
		applyOverride(model.TargetOrg, SourceOrgOverride)
		applyOverride(model.TargetUser, SourceUserOverride)

		coerced := Coerce(def.ValueType, value)
		valid := Validate(UnmarshalSchema(def.ValidationSchema), coerced)
		if !valid {
			coerced = UnmarshalValue(def.DefaultValue)
		}
		resolved[def.Key] = Resolved{
			Enabled: enabled && valid,
			Value:   coerced,
			Source:  source,
		}
	}

	return &Entitlements{Resolved: resolved, db: r.db}, nil
}

// Has reports whether the entitlement is effectively enabled.
func (e *Entitlements) Has(key string) bool {
	r, ok := e.Resolved[key]
	return ok && r.Enabled
}

// Value returns the effective value, or fallback when unknown or nil.
func (e *Entitlements) Value(key string, fallback interface{}) interface{} {
	r, ok := e.Resolved[key]
	if !ok || r.Value == nil {
		return fallback
	}
	return r.Value
}

var modeRank = map[string]int{
	"hidden": 1,
	"view":   2,
	"edit":   3,
	"admin":  4,
}

// EnforceMode compares access-mode entitlements (hidden < view < edit < admin).
func (e *Entitlements) EnforceMode(key, requiredMode string) bool {
	mode, _ := e.Value(key, "hidden").(string)
	return modeRank[mode] >= modeRank[requiredMode]
}

// EnforceQuota checks a quota-policy entitlement against recorded usage.
func (e *Entitlements) EnforceQuota(key string, scopeType model.UsageScopeType, scopeID string) (QuotaResult, error) {
	config, ok := e.Value(key, nil).(map[string]interface{})
	if !ok {
		return QuotaResult{Allowed: true}, nil
	}
	limit, _ := config["limit"].(float64)
	if limit <= 0 {
		return QuotaResult{Allowed: true}, nil
	}

	window, _ := config["window"].(string)
	if window == "" {
		window = string(WindowDay)
	}
	result, err := CheckQuota(e.db, QuotaCheck{
		EntitlementKey: key,
		ScopeType:      scopeType,
		ScopeID:        scopeID,
		Limit:          int64(limit),
		Window:         QuotaWindow(window),
	})
	if err != nil {
		return QuotaResult{}, err
	}
	if behavior, ok := config["overage_behavior"].(string); ok {
		result.OverageBehavior = behavior
	} else {
		result.OverageBehavior = "block"
	}
	return result, nil
}

// Consume records one unit of quota usage for the scope.
func (e *Entitlements) Consume(key string, scopeType model.UsageScopeType, scopeID string) error {
	config, _ := e.Value(key, nil).(map[string]interface{})
	window := string(WindowDay)
	if w, ok := config["window"].(string); ok && w != "" {
		window = w
	}
	return IncrementUsage(e.db, UsageInput{
		EntitlementKey: key,
		ScopeType:      scopeType,
		ScopeID:        scopeID,
		Window:         QuotaWindow(window),
	})
}
