package common

import (
	"encoding/json"
	"fmt"
)

// CursorPaging is the cursor-based paging block of Graph list responses.
type CursorPaging struct {
	Cursors  PagingCursors `json:"cursors"`
	Previous *string       `json:"previous,omitempty"`
	Next     *string       `json:"next,omitempty"`
}

type PagingCursors struct {
	Before *string `json:"before,omitempty"`
	After  *string `json:"after,omitempty"`
}

// NextCursor returns the after cursor only when a next page exists.
func (p CursorPaging) NextCursor() (string, bool) {
	if p.Next == nil || p.Cursors.After == nil {
		return "", false
	}
	return *p.Cursors.After, true
}

func (p *CursorPaging) UnmarshalJSON(data []byte) error {
	fields, err := DecodeObject(data, "paging")
	if err != nil {
		return err
	}
	type plain CursorPaging
	var decoded plain
	if err := RequireField(fields, "cursors", &decoded.Cursors); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("common: decode paging: %w", err)
	}
	*p = CursorPaging(decoded)
	return nil
}
