package facebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-meta-tokens/providers/meta/common"
)

type DebugTokenType string

const (
	DebugTokenTypeApp  DebugTokenType = "APP"
	DebugTokenTypeUser DebugTokenType = "USER"
	DebugTokenTypePage DebugTokenType = "PAGE"
)

// DebugTokenResult is the "data" object of a debug_token response. TypeExtra
// holds the members selected by the "type" discriminator and is nil when the
// payload carries no recognized type or the members for it are incomplete.
type DebugTokenResult struct {
	IsValid   bool
	Scopes    []string
	Error     *common.GraphError
	TypeExtra DebugTokenTypeExtra
}

// DebugTokenTypeExtra is one of DebugTokenAppExtra, DebugTokenUserExtra or
// DebugTokenPageExtra.
type DebugTokenTypeExtra interface {
	TokenType() DebugTokenType
	appendFields(out map[string]any)
}

type DebugTokenAppExtra struct {
	AppID       uint64
	Application string
}

// DebugTokenUserExtra keeps Metadata as decoded JSON of any shape, with
// numbers as json.Number.
type DebugTokenUserExtra struct {
	AppID               uint64
	Application         string
	UserID              uint64
	IssuedAt            *time.Time
	ExpiresAt           time.Time
	DataAccessExpiresAt time.Time
	Metadata            any
	GranularScopes      []GranularScope
}

type DebugTokenPageExtra struct {
	DebugTokenUserExtra
	ProfileID uint64
}

// GranularScope lists the objects a permission was granted on. TargetIDs is
// nil when the grant is not restricted to specific targets.
type GranularScope struct {
	Scope     string
	TargetIDs []int64
}

// Expires is either Never or a concrete Date.
type Expires struct {
	Never bool
	Date  time.Time
}

func (e Expires) String() string {
	if e.Never {
		return "never"
	}
	return e.Date.UTC().Format(time.RFC3339)
}

func (DebugTokenAppExtra) TokenType() DebugTokenType  { return DebugTokenTypeApp }
func (DebugTokenUserExtra) TokenType() DebugTokenType { return DebugTokenTypeUser }
func (DebugTokenPageExtra) TokenType() DebugTokenType { return DebugTokenTypePage }

// Expires treats an expires_at of epoch zero as never expiring.
func (u DebugTokenUserExtra) Expires() Expires {
	if u.ExpiresAt.Unix() == 0 {
		return Expires{Never: true}
	}
	return Expires{Date: u.ExpiresAt}
}

// Expires reports the expiry of user and page tokens. App tokens carry none.
func (r DebugTokenResult) Expires() (Expires, bool) {
	switch extra := r.TypeExtra.(type) {
	case DebugTokenUserExtra:
		return extra.Expires(), true
	case DebugTokenPageExtra:
		return extra.Expires(), true
	default:
		return Expires{}, false
	}
}

// AppID returns the app the token belongs to, when the type is known.
func (r DebugTokenResult) AppID() (uint64, bool) {
	switch extra := r.TypeExtra.(type) {
	case DebugTokenAppExtra:
		return extra.AppID, true
	case DebugTokenUserExtra:
		return extra.AppID, true
	case DebugTokenPageExtra:
		return extra.AppID, true
	default:
		return 0, false
	}
}

func (r DebugTokenResult) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"is_valid": r.IsValid,
		"scopes":   r.Scopes,
	}
	if r.Scopes == nil {
		out["scopes"] = []string{}
	}
	if r.Error != nil {
		out["error"] = *r.Error
	}
	if r.TypeExtra != nil {
		r.TypeExtra.appendFields(out)
		out["type"] = string(r.TypeExtra.TokenType())
	}
	return json.Marshal(out)
}

func (r *DebugTokenResult) UnmarshalJSON(data []byte) error {
	fields, err := common.DecodeObject(data, "debug token result")
	if err != nil {
		return err
	}

	var decoded DebugTokenResult
	if err := common.RequireField(fields, "is_valid", &decoded.IsValid); err != nil {
		return err
	}
	if err := common.RequireField(fields, "scopes", &decoded.Scopes); err != nil {
		return err
	}
	if err := common.OptionalField(fields, "error", &decoded.Error); err != nil {
		return err
	}

	var tokenType *string
	if err := common.OptionalField(fields, "type", &tokenType); err != nil {
		return err
	}
	if tokenType != nil {
		decoded.TypeExtra = decodeTypeExtra(DebugTokenType(*tokenType), fields)
	}

	*r = decoded
	return nil
}

// decodeTypeExtra returns nil when the type is unknown or its members are
// incomplete, so validity, scopes and error survive a partial payload.
func decodeTypeExtra(tokenType DebugTokenType, fields map[string]json.RawMessage) DebugTokenTypeExtra {
	switch tokenType {
	case DebugTokenTypeApp:
		if extra, err := decodeAppExtra(fields); err == nil {
			return extra
		}
	case DebugTokenTypeUser:
		if extra, err := decodeUserExtra(fields); err == nil {
			return extra
		}
	case DebugTokenTypePage:
		user, err := decodeUserExtra(fields)
		if err != nil {
			return nil
		}
		profileID, err := requireID(fields, "profile_id")
		if err != nil {
			return nil
		}
		return DebugTokenPageExtra{DebugTokenUserExtra: user, ProfileID: profileID}
	}
	return nil
}

func (e DebugTokenAppExtra) appendFields(out map[string]any) {
	out["app_id"] = common.FlexUint64(e.AppID)
	out["application"] = e.Application
}

func (e DebugTokenUserExtra) appendFields(out map[string]any) {
	out["app_id"] = common.FlexUint64(e.AppID)
	out["application"] = e.Application
	out["user_id"] = common.FlexUint64(e.UserID)
	if e.IssuedAt != nil {
		out["issued_at"] = e.IssuedAt.Unix()
	}
	out["expires_at"] = e.ExpiresAt.Unix()
	out["data_access_expires_at"] = e.DataAccessExpiresAt.Unix()
	if e.Metadata != nil {
		out["metadata"] = e.Metadata
	}
	if e.GranularScopes != nil {
		out["granular_scopes"] = e.GranularScopes
	}
}

func (e DebugTokenPageExtra) appendFields(out map[string]any) {
	e.DebugTokenUserExtra.appendFields(out)
	out["profile_id"] = common.FlexUint64(e.ProfileID)
}

func decodeAppExtra(fields map[string]json.RawMessage) (DebugTokenAppExtra, error) {
	var extra DebugTokenAppExtra
	appID, err := requireID(fields, "app_id")
	if err != nil {
		return extra, err
	}
	extra.AppID = appID
	if err := common.RequireField(fields, "application", &extra.Application); err != nil {
		return extra, err
	}
	return extra, nil
}

func decodeUserExtra(fields map[string]json.RawMessage) (DebugTokenUserExtra, error) {
	var extra DebugTokenUserExtra
	app, err := decodeAppExtra(fields)
	if err != nil {
		return extra, err
	}
	extra.AppID = app.AppID
	extra.Application = app.Application

	if extra.UserID, err = requireID(fields, "user_id"); err != nil {
		return extra, err
	}

	var issuedAt *int64
	if err := common.OptionalField(fields, "issued_at", &issuedAt); err != nil {
		return extra, err
	}
	if issuedAt != nil {
		value := time.Unix(*issuedAt, 0).UTC()
		extra.IssuedAt = &value
	}
	var expiresAt, dataAccessExpiresAt int64
	if err := common.OptionalField(fields, "expires_at", &expiresAt); err != nil {
		return extra, err
	}
	if err := common.OptionalField(fields, "data_access_expires_at", &dataAccessExpiresAt); err != nil {
		return extra, err
	}
	extra.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	extra.DataAccessExpiresAt = time.Unix(dataAccessExpiresAt, 0).UTC()

	if raw, ok := fields["metadata"]; ok && !common.IsNull(raw) {
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.UseNumber()
		if err := decoder.Decode(&extra.Metadata); err != nil {
			return extra, fmt.Errorf("facebook: decode field %q: %w", "metadata", err)
		}
	}
	if err := common.OptionalField(fields, "granular_scopes", &extra.GranularScopes); err != nil {
		return extra, err
	}
	return extra, nil
}

func requireID(fields map[string]json.RawMessage, key string) (uint64, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("facebook: missing required field %q", key)
	}
	value, err := common.ParseFlexUint64(raw)
	if err != nil {
		return 0, fmt.Errorf("facebook: decode field %q: %w", key, err)
	}
	return value, nil
}

func (g GranularScope) MarshalJSON() ([]byte, error) {
	out := map[string]any{"scope": g.Scope}
	if g.TargetIDs != nil {
		ids := make([]string, len(g.TargetIDs))
		for i, id := range g.TargetIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		out["target_ids"] = ids
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts target_ids as an array of numeric strings, null, or
// absent.
func (g *GranularScope) UnmarshalJSON(data []byte) error {
	fields, err := common.DecodeObject(data, "granular scope")
	if err != nil {
		return err
	}
	var decoded GranularScope
	if err := common.RequireField(fields, "scope", &decoded.Scope); err != nil {
		return err
	}
	var rawIDs []json.RawMessage
	if err := common.OptionalField(fields, "target_ids", &rawIDs); err != nil {
		return err
	}
	if rawIDs != nil {
		decoded.TargetIDs = make([]int64, 0, len(rawIDs))
		for _, rawID := range rawIDs {
			id, err := parseTargetID(rawID)
			if err != nil {
				return err
			}
			decoded.TargetIDs = append(decoded.TargetIDs, id)
		}
	}
	*g = decoded
	return nil
}

func parseTargetID(raw json.RawMessage) (int64, error) {
	text := string(bytes.TrimSpace(raw))
	if len(text) > 0 && text[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, fmt.Errorf("facebook: decode target id: %w", err)
		}
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("facebook: target id %q is invalid: %w", text, err)
	}
	return id, nil
}

var (
	_ DebugTokenTypeExtra = DebugTokenAppExtra{}
	_ DebugTokenTypeExtra = DebugTokenUserExtra{}
	_ DebugTokenTypeExtra = DebugTokenPageExtra{}
)
