package facebook

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goliatone/go-meta-tokens/core"
	"github.com/goliatone/go-meta-tokens/providers/meta/common"
)

const (
	GrantTypeClientCredentials = "client_credentials"
	GrantTypeFBExchangeToken   = "fb_exchange_token"
	GrantTypeFBAttenuateToken  = "fb_attenuate_token"
)

const accessTokenPath = "oauth/access_token"

// AccessTokenEndpoint is GET /{version}/oauth/access_token. Optional
// parameters are omitted from the query when nil.
type AccessTokenEndpoint struct {
	GrantType       string
	AppID           uint64
	AppSecret       *string
	FBExchangeToken *string

	Version   string
	BaseURL   string
	UserAgent string
}

// AccessTokenResponse is the success body of the exchange endpoint.
type AccessTokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   *uint64 `json:"expires_in,omitempty"`
}

func (r AccessTokenResponse) Validate() error {
	if r.AccessToken == "" {
		return errors.New("facebook: access_token is required")
	}
	if r.TokenType == "" {
		return errors.New("facebook: token_type is required")
	}
	return nil
}

// Expiry returns nil when the response did not carry expires_in.
func (r AccessTokenResponse) Expiry() *AccessTokenExpiresIn {
	if r.ExpiresIn == nil {
		return nil
	}
	expiresIn := AccessTokenExpiresIn(*r.ExpiresIn)
	return &expiresIn
}

func (e AccessTokenEndpoint) RenderRequest() (core.TransportRequest, error) {
	grantType := strings.TrimSpace(e.GrantType)
	if grantType == "" {
		return core.TransportRequest{}, core.RequestBuildError("facebook: grant_type is required", nil)
	}
	if e.AppID == 0 {
		return core.TransportRequest{}, core.RequestBuildError("facebook: app id is required", map[string]any{
			"grant_type": grantType,
		})
	}

	query := []common.QueryParam{
		{Key: "grant_type", Value: grantType},
		{Key: "client_id", Value: strconv.FormatUint(e.AppID, 10)},
	}
	if e.AppSecret != nil {
		if *e.AppSecret == "" {
			return core.TransportRequest{}, core.RequestBuildError("facebook: client_secret is empty", map[string]any{
				"grant_type": grantType,
			})
		}
		query = append(query, common.QueryParam{Key: "client_secret", Value: *e.AppSecret})
	}
	if e.FBExchangeToken != nil {
		if *e.FBExchangeToken == "" {
			return core.TransportRequest{}, core.RequestBuildError("facebook: fb_exchange_token is empty", map[string]any{
				"grant_type": grantType,
			})
		}
		query = append(query, common.QueryParam{Key: "fb_exchange_token", Value: *e.FBExchangeToken})
	}

	return common.GraphRequest{
		BaseURL:   e.BaseURL,
		Version:   e.Version,
		Path:      accessTokenPath,
		Query:     query,
		UserAgent: e.UserAgent,
	}.Render()
}

func (e AccessTokenEndpoint) ParseResponse(res core.TransportResponse) (common.Ret[AccessTokenResponse], error) {
	return common.ParseResponse[AccessTokenResponse](res)
}

var _ common.Endpoint[AccessTokenResponse] = AccessTokenEndpoint{}
