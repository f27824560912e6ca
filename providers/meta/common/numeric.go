package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexUint64 decodes an unsigned id sent either as a JSON number or as a
// string of base-10 digits. It is written back as a string.
type FlexUint64 uint64

func (v FlexUint64) Uint64() uint64 {
	return uint64(v)
}

func (v FlexUint64) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

func (v FlexUint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *FlexUint64) UnmarshalJSON(data []byte) error {
	parsed, err := ParseFlexUint64(data)
	if err != nil {
		return err
	}
	*v = FlexUint64(parsed)
	return nil
}

// ParseFlexUint64 accepts a raw JSON number or string holding an unsigned
// base-10 integer.
func ParseFlexUint64(raw json.RawMessage) (uint64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || IsNull(trimmed) {
		return 0, fmt.Errorf("common: expected numeric id, got null")
	}
	text := string(trimmed)
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return 0, fmt.Errorf("common: decode numeric id: %w", err)
		}
	}
	parsed, err := ParseDecimalUint64(text)
	if err != nil {
		return 0, fmt.Errorf("common: numeric id %q is invalid: %w", text, err)
	}
	return parsed, nil
}

// ParseDecimalUint64 parses an unsigned base-10 integer. A single leading '+'
// is accepted; signs, spaces and underscores anywhere else are not.
func ParseDecimalUint64(text string) (uint64, error) {
	digits, _ := strings.CutPrefix(text, "+")
	return strconv.ParseUint(digits, 10, 64)
}
