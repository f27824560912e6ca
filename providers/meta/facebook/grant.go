package facebook

import (
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Grant is an issued token together with the lifetime Graph reported for it.
// ExpiresIn is nil when no expiry was communicated, which does not mean the
// token never expires.
type Grant[T any] struct {
	Token     T
	TokenType string
	ExpiresIn *AccessTokenExpiresIn
}

// ExpiresAt resolves ExpiresIn against now.
func (g Grant[T]) ExpiresAt(now time.Time) (time.Time, bool) {
	if g.ExpiresIn == nil {
		return time.Time{}, false
	}
	return g.ExpiresIn.ExpiresAt(now), true
}

func newGrant[T any](token T, res AccessTokenResponse) Grant[T] {
	return Grant[T]{
		Token:     token,
		TokenType: res.TokenType,
		ExpiresIn: res.Expiry(),
	}
}

// TokenValue is implemented by every token kind.
type TokenValue interface {
	Value() string
}

// ToOAuth2Token converts a grant for use with oauth2-aware HTTP clients. The
// expiry is left zero when Graph did not report one.
func ToOAuth2Token[T TokenValue](grant Grant[T], now time.Time) *oauth2.Token {
	tokenType := strings.TrimSpace(grant.TokenType)
	if tokenType == "" {
		tokenType = "bearer"
	}
	token := &oauth2.Token{
		AccessToken: grant.Token.Value(),
		TokenType:   tokenType,
	}
	if expiresAt, ok := grant.ExpiresAt(now); ok {
		token.Expiry = expiresAt
	}
	if grant.ExpiresIn != nil {
		token = token.WithExtra(map[string]any{"expires_in": grant.ExpiresIn.Seconds()})
	}
	return token
}

// StaticTokenSource wraps the converted grant in an oauth2.TokenSource.
func StaticTokenSource[T TokenValue](grant Grant[T], now time.Time) oauth2.TokenSource {
	return oauth2.StaticTokenSource(ToOAuth2Token(grant, now))
}
