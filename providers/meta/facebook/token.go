package facebook

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-meta-tokens/providers/meta/common"
)

const (
	LongLivedUserAccessTokenLifetime     = 60 * 24 * time.Hour
	ShortLivedUserAccessTokenLifetimeMin = time.Hour
	ShortLivedUserAccessTokenLifetimeMax = 2 * time.Hour
)

// UserToken is satisfied by every user access token kind. Converting to
// UserAccessToken forgets whether the token was short or long lived.
type UserToken interface {
	UserAccessToken() UserAccessToken
}

// ShortLivedUserAccessToken is the token issued by the login dialog. It
// stays valid after being exchanged for a long-lived token.
type ShortLivedUserAccessToken struct{ value string }

func NewShortLivedUserAccessToken(value string) ShortLivedUserAccessToken {
	return ShortLivedUserAccessToken{value: value}
}

func (t ShortLivedUserAccessToken) Value() string  { return t.value }
func (t ShortLivedUserAccessToken) String() string { return t.value }
func (t ShortLivedUserAccessToken) IsZero() bool   { return t.value == "" }

func (t ShortLivedUserAccessToken) UserAccessToken() UserAccessToken {
	return UserAccessToken{value: t.value}
}

// LongLivedUserAccessToken lasts about LongLivedUserAccessTokenLifetime.
type LongLivedUserAccessToken struct{ value string }

func NewLongLivedUserAccessToken(value string) LongLivedUserAccessToken {
	return LongLivedUserAccessToken{value: value}
}

func (t LongLivedUserAccessToken) Value() string  { return t.value }
func (t LongLivedUserAccessToken) String() string { return t.value }
func (t LongLivedUserAccessToken) IsZero() bool   { return t.value == "" }

func (t LongLivedUserAccessToken) UserAccessToken() UserAccessToken {
	return UserAccessToken{value: t.value}
}

// UserAccessToken is a user token of unspecified lifetime.
type UserAccessToken struct{ value string }

func NewUserAccessToken(value string) UserAccessToken {
	return UserAccessToken{value: value}
}

func (t UserAccessToken) Value() string  { return t.value }
func (t UserAccessToken) String() string { return t.value }
func (t UserAccessToken) IsZero() bool   { return t.value == "" }

func (t UserAccessToken) UserAccessToken() UserAccessToken { return t }

// AppAccessToken authorizes calls on behalf of an app. It is either issued by
// the client_credentials grant or built locally from the app secret.
type AppAccessToken struct{ value string }

func NewAppAccessToken(value string) AppAccessToken {
	return AppAccessToken{value: value}
}

// AppAccessTokenWithAppSecret formats "{app_id}|{app_secret}" without any
// network call.
func AppAccessTokenWithAppSecret(appID uint64, appSecret string) AppAccessToken {
	return AppAccessToken{value: strconv.FormatUint(appID, 10) + "|" + appSecret}
}

func (t AppAccessToken) Value() string  { return t.value }
func (t AppAccessToken) String() string { return t.value }
func (t AppAccessToken) IsZero() bool   { return t.value == "" }

// AppIDAndAppSecret splits a locally built token. It reports false unless the
// value holds exactly one '|' with an unsigned integer before it and a
// non-empty secret after it. The integer may carry a leading '+'.
func (t AppAccessToken) AppIDAndAppSecret() (uint64, string, bool) {
	rawID, secret, found := strings.Cut(t.value, "|")
	if !found || secret == "" || strings.Contains(secret, "|") {
		return 0, "", false
	}
	appID, err := common.ParseDecimalUint64(rawID)
	if err != nil {
		return 0, "", false
	}
	return appID, secret, true
}

// PageAccessToken expires together with the user token it was read with.
type PageAccessToken struct{ value string }

func NewPageAccessToken(value string) PageAccessToken {
	return PageAccessToken{value: value}
}

func (t PageAccessToken) Value() string  { return t.value }
func (t PageAccessToken) String() string { return t.value }
func (t PageAccessToken) IsZero() bool   { return t.value == "" }

type ClientAccessToken struct{ value string }

// NewClientAccessToken formats "{app_id}|{client_token}".
func NewClientAccessToken(appID uint64, clientToken string) ClientAccessToken {
	return ClientAccessToken{value: strconv.FormatUint(appID, 10) + "|" + clientToken}
}

func (t ClientAccessToken) Value() string  { return t.value }
func (t ClientAccessToken) String() string { return t.value }
func (t ClientAccessToken) IsZero() bool   { return t.value == "" }

// UserSessionInfoAccessToken grants no data access. It can only be checked
// through debug_token, authorized by another credential.
type UserSessionInfoAccessToken struct{ value string }

func NewUserSessionInfoAccessToken(value string) UserSessionInfoAccessToken {
	return UserSessionInfoAccessToken{value: value}
}

func (t UserSessionInfoAccessToken) Value() string  { return t.value }
func (t UserSessionInfoAccessToken) String() string { return t.value }
func (t UserSessionInfoAccessToken) IsZero() bool   { return t.value == "" }

type PageSessionInfoAccessToken struct{ value string }

func NewPageSessionInfoAccessToken(value string) PageSessionInfoAccessToken {
	return PageSessionInfoAccessToken{value: value}
}

func (t PageSessionInfoAccessToken) Value() string  { return t.value }
func (t PageSessionInfoAccessToken) String() string { return t.value }
func (t PageSessionInfoAccessToken) IsZero() bool   { return t.value == "" }

// AccessTokenExpiresIn is the expires_in of an exchange response, in seconds.
type AccessTokenExpiresIn uint64

func (e AccessTokenExpiresIn) Seconds() uint64 {
	return uint64(e)
}

func (e AccessTokenExpiresIn) Duration() time.Duration {
	return time.Duration(e) * time.Second
}

func (e AccessTokenExpiresIn) ExpiresAt(now time.Time) time.Time {
	return now.Add(e.Duration())
}

func (e AccessTokenExpiresIn) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

var (
	_ UserToken = ShortLivedUserAccessToken{}
	_ UserToken = LongLivedUserAccessToken{}
	_ UserToken = UserAccessToken{}
)
