package entitlement

import "llmarena_backend/internal/model"

// Definition is one statically declared entitlement. The seeder upserts these
// by key; admins may adjust values per plan afterwards.
type Definition struct {
	Key              string
	Description      string
	ValueType        model.EntitlementValueType
	DefaultValue     interface{}
	ValidationSchema map[string]interface{}
}

var quotaSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"limit", "window", "scope", "overage_behavior"},
	"properties": map[string]interface{}{
		"limit":            map[string]interface{}{"type": "number", "minimum": float64(0)},
		"window":           map[string]interface{}{"type": "string", "enum": []interface{}{"minute", "hour", "day", "month"}},
		"scope":            map[string]interface{}{"type": "string", "enum": []interface{}{"user", "org"}},
		"burst":            map[string]interface{}{"type": "number", "minimum": float64(0)},
		"overage_behavior": map[string]interface{}{"type": "string", "enum": []interface{}{"block", "queue", "degrade", "bill_overage"}},
	},
}

// Catalog is the full entitlement catalog. Keys never change once shipped;
// they are referenced from overrides by key, not id.
var Catalog = []Definition{
	{
		Key:         "matches.quota",
		Description: "Match creation quota policy",
		ValueType:   model.ValueJSON,
		DefaultValue: map[string]interface{}{
			"limit": float64(10), "window": "day", "scope": "user", "burst": float64(0), "overage_behavior": "block",
		},
		ValidationSchema: quotaSchema,
	},
	{
		Key:              "matches.concurrent",
		Description:      "Max concurrent matches",
		ValueType:        model.ValueNumber,
		DefaultValue:     float64(1),
		ValidationSchema: map[string]interface{}{"type": "number", "minimum": float64(0)},
	},
	{
		Key:              "queue.priority",
		Description:      "Queue priority tier",
		ValueType:        model.ValueEnum,
		DefaultValue:     "standard",
		ValidationSchema: map[string]interface{}{"type": "string", "enum": []interface{}{"low", "standard", "high", "critical"}},
	},
	{
		Key:         "engine.generate",
		Description: "Engine generation policy",
		ValueType:   model.ValueJSON,
		DefaultValue: map[string]interface{}{
			"enabled": true,
			"quota":   map[string]interface{}{"limit": float64(5), "window": "day", "scope": "user", "overage_behavior": "block"},
		},
		ValidationSchema: map[string]interface{}{"type": "object"},
	},
	{
		Key:              "engine.publish",
		Description:      "Engine publish access mode",
		ValueType:        model.ValueEnum,
		DefaultValue:     "admin",
		ValidationSchema: map[string]interface{}{"type": "string", "enum": []interface{}{"hidden", "view", "edit", "admin", "locked"}},
	},
	{
		Key:              "models.allowed_providers",
		Description:      "Allowed model providers",
		ValueType:        model.ValueJSON,
		DefaultValue:     []interface{}{},
		ValidationSchema: map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
	},
	{
		Key:              "models.allowed_ids",
		Description:      "Allowed model IDs",
		ValueType:        model.ValueJSON,
		DefaultValue:     []interface{}{},
		ValidationSchema: map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
	},
	{
		Key:              "retention.days",
		Description:      "Data retention days",
		ValueType:        model.ValueNumber,
		DefaultValue:     float64(30),
		ValidationSchema: map[string]interface{}{"type": "number", "minimum": float64(1), "maximum": float64(3650)},
	},
	{
		Key:              "export.csv",
		Description:      "Allow data exports",
		ValueType:        model.ValueBool,
		DefaultValue:     false,
		ValidationSchema: map[string]interface{}{"type": "boolean"},
	},
	{
		Key:              "security.require_sso",
		Description:      "Require SSO",
		ValueType:        model.ValueBool,
		DefaultValue:     false,
		ValidationSchema: map[string]interface{}{"type": "boolean"},
	},
	{
		Key:              "security.require_mfa",
		Description:      "Require MFA",
		ValueType:        model.ValueBool,
		DefaultValue:     false,
		ValidationSchema: map[string]interface{}{"type": "boolean"},
	},
	{
		Key:              "api.key.create",
		Description:      "Allow API key creation",
		ValueType:        model.ValueBool,
		DefaultValue:     true,
		ValidationSchema: map[string]interface{}{"type": "boolean"},
	},
	{
		Key:              "api.key.max",
		Description:      "Max API keys per user",
		ValueType:        model.ValueNumber,
		DefaultValue:     float64(3),
		ValidationSchema: map[string]interface{}{"type": "number", "minimum": float64(0)},
	},
	{
		Key:              "api.scopes.allowed",
		Description:      "Allowed API scopes",
		ValueType:        model.ValueJSON,
		DefaultValue:     []interface{}{"models.read", "matches.read", "matches.write", "account.read"},
		ValidationSchema: map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
	},
	{
		Key:         "api.requests.quota",
		Description: "API request quota policy",
		ValueType:   model.ValueJSON,
		DefaultValue: map[string]interface{}{
			"limit": float64(1000), "window": "day", "scope": "api_key", "overage_behavior": "block",
		},
		ValidationSchema: map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"limit", "window", "scope", "overage_behavior"},
			"properties": map[string]interface{}{
				"limit":            map[string]interface{}{"type": "number", "minimum": float64(0)},
				"window":           map[string]interface{}{"type": "string", "enum": []interface{}{"minute", "hour", "day", "month"}},
				"scope":            map[string]interface{}{"type": "string", "enum": []interface{}{"api_key"}},
				"overage_behavior": map[string]interface{}{"type": "string", "enum": []interface{}{"block", "queue", "degrade", "bill_overage"}},
			},
		},
	},
}
