package entitlement

import (
	"fmt"
	"math"
	"strconv"

	"llmarena_backend/internal/model"
)

// Coerce normalizes a raw JSON value into the entitlement's declared type.
func Coerce(valueType model.EntitlementValueType, value interface{}) interface{} {
	switch valueType {
	case model.ValueBool:
		switch v := value.(type) {
		case bool:
			return v
		case float64:
			return v != 0
		case string:
			return v != ""
		case nil:
			return false
		default:
			return true
		}
	case model.ValueNumber:
		switch v := value.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return math.NaN()
			}
			return f
		default:
			return math.NaN()
		}
	case model.ValueString, model.ValueEnum:
		if value == nil {
			return nil
		}
		if s, ok := value.(string); ok {
			return s
		}
		return fmt.Sprint(value)
	default:
		return value
	}
}

// Validate checks a value against a minimal JSON-schema subset: boolean,
// number with minimum/maximum, string with enum, array of strings, object
// with required keys and per-property schemas. A nil schema accepts anything.
func Validate(schema map[string]interface{}, value interface{}) bool {
	if schema == nil {
		return true
	}

	switch schema["type"] {
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "number":
		f, ok := value.(float64)
		if !ok || math.IsNaN(f) {
			return false
		}
		if min, ok := schema["minimum"].(float64); ok && f < min {
			return false
		}
		if max, ok := schema["maximum"].(float64); ok && f > max {
			return false
		}
		return true
	case "string":
		s, ok := value.(string)
		if !ok {
			return false
		}
		if enum, ok := schema["enum"].([]interface{}); ok {
			for _, option := range enum {
				if option == s {
					return true
				}
			}
			return false
		}
		return true
	case "array":
		items, ok := value.([]interface{})
		if !ok {
			return false
		}
		if itemSchema, ok := schema["items"].(map[string]interface{}); ok && itemSchema["type"] == "string" {
			for _, item := range items {
				if _, ok := item.(string); !ok {
					return false
				}
			}
		}
		return true
	case "object":
		obj, ok := value.(map[string]interface{})
		if !ok {
			return false
		}
		if required, ok := schema["required"].([]interface{}); ok {
			for _, key := range required {
				name, _ := key.(string)
				if _, present := obj[name]; !present {
					return false
				}
			}
		}
		if props, ok := schema["properties"].(map[string]interface{}); ok {
			for name, propSchema := range props {
				propValue, present := obj[name]
				if !present {
					continue
				}
				prop, _ := propSchema.(map[string]interface{})
				if !Validate(prop, propValue) {
					return false
				}
			}
		}
		return true
	}
	return true
}
