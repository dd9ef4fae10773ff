package entitlement

import (
	"bytes"
	"encoding/json"

	"gorm.io/datatypes"
)

// MarshalValue encodes an arbitrary value for a JSON column. A nil value
// marshals to SQL NULL, not the JSON literal null.
func MarshalValue(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// UnmarshalValue decodes a JSON column into a generic value. Empty and
// JSON-null columns both come back as nil.
func UnmarshalValue(raw datatypes.JSON) interface{} {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// UnmarshalSchema decodes a validation schema column.
func UnmarshalSchema(raw datatypes.JSON) map[string]interface{} {
	v := UnmarshalValue(raw)
	schema, _ := v.(map[string]interface{})
	return schema
}
