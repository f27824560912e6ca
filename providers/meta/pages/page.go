package pages

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-meta-tokens/providers/meta/common"
)

// Page is one search hit. ID arrives as a numeric string.
type Page struct {
	ID                          uint64    `json:"-"`
	Name                        string    `json:"name"`
	Link                        string    `json:"link"`
	Location                    *Location `json:"location,omitempty"`
	IsEligibleForBrandedContent *bool     `json:"is_eligible_for_branded_content,omitempty"`
	IsUnclaimed                 *bool     `json:"is_unclaimed,omitempty"`
	VerificationStatus          *string   `json:"verification_status,omitempty"`
}

type Location struct {
	City      *string  `json:"city,omitempty"`
	Country   *string  `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	State     *string  `json:"state,omitempty"`
	Street    *string  `json:"street,omitempty"`
	Zip       *string  `json:"zip,omitempty"`
}

func (p Page) MarshalJSON() ([]byte, error) {
	type plain Page
	return json.Marshal(struct {
		ID common.FlexUint64 `json:"id"`
		plain
	}{ID: common.FlexUint64(p.ID), plain: plain(p)})
}

func (p *Page) UnmarshalJSON(data []byte) error {
	fields, err := common.DecodeObject(data, "page")
	if err != nil {
		return err
	}
	raw, ok := fields["id"]
	if !ok {
		return fmt.Errorf("pages: missing required field %q", "id")
	}
	id, err := common.ParseFlexUint64(raw)
	if err != nil {
		return fmt.Errorf("pages: decode field %q: %w", "id", err)
	}

	type plain Page
	var decoded plain
	if err := common.RequireField(fields, "name", &decoded.Name); err != nil {
		return err
	}
	if err := common.RequireField(fields, "link", &decoded.Link); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("pages: decode page: %w", err)
	}
	decoded.ID = id
	*p = Page(decoded)
	return nil
}
