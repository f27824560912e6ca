// Package instagram holds Instagram Graph objects that share the Facebook
// Graph error and id conventions.
package instagram

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-meta-tokens/providers/meta/common"
)

// User is an Instagram business or creator account node.
type User struct {
	ID uint64 `json:"id"`
}

func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID common.FlexUint64 `json:"id"`
	}{ID: common.FlexUint64(u.ID)})
}

// UnmarshalJSON accepts the id as a JSON number or a numeric string.
func (u *User) UnmarshalJSON(data []byte) error {
	fields, err := common.DecodeObject(data, "instagram user")
	if err != nil {
		return err
	}
	raw, ok := fields["id"]
	if !ok {
		return fmt.Errorf("instagram: missing required field %q", "id")
	}
	id, err := common.ParseFlexUint64(raw)
	if err != nil {
		return fmt.Errorf("instagram: decode field %q: %w", "id", err)
	}
	u.ID = id
	return nil
}
