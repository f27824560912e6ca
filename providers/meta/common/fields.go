package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// DecodeObject splits a JSON object into raw members. Anything other than an
// object is rejected.
func DecodeObject(data []byte, what string) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("common: %s must be a JSON object", what)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// RequireField decodes a member that must be present and non-null.
func RequireField(fields map[string]json.RawMessage, key string, target any) error {
	raw, ok := fields[key]
	if !ok || IsNull(raw) {
		return fmt.Errorf("common: missing required field %q", key)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("common: decode field %q: %w", key, err)
	}
	return nil
}

func OptionalField(fields map[string]json.RawMessage, key string, target any) error {
	raw, ok := fields[key]
	if !ok || IsNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("common: decode field %q: %w", key, err)
	}
	return nil
}

// CollectExtra gathers the members not listed in known, keeping numbers as
// json.Number.
func CollectExtra(fields map[string]json.RawMessage, known map[string]struct{}) (map[string]any, error) {
	var extra map[string]any
	for key, raw := range fields {
		if _, ok := known[key]; ok {
			continue
		}
		var value any
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("common: decode field %q: %w", key, err)
		}
		if extra == nil {
			extra = map[string]any{}
		}
		extra[key] = value
	}
	return extra, nil
}

func IsNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func integerValue(value any) (int64, bool) {
	switch typed := value.(type) {
	case int:
		return int64(typed), true
	case int32:
		return int64(typed), true
	case int64:
		return typed, true
	case uint16:
		return int64(typed), true
	case float64:
		if typed != float64(int64(typed)) {
			return 0, false
		}
		return int64(typed), true
	case json.Number:
		parsed, err := strconv.ParseInt(typed.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
