package facebook

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-meta-tokens/core"
	"github.com/goliatone/go-meta-tokens/providers/meta/common"
)

// Client runs the token workflows against the Graph API. It holds no mutable
// state and is safe for concurrent use.
type Client struct {
	service   *core.Service
	transport core.TransportAdapter
	baseURL   string
	version   string
	userAgent string
}

type ClientOption func(*Client)

// WithTransport overrides the adapter carried by the service.
func WithTransport(adapter core.TransportAdapter) ClientOption {
	return func(c *Client) {
		if adapter != nil {
			c.transport = adapter
		}
	}
}

// WithVersion pins the Graph API version used by every endpoint.
func WithVersion(version string) ClientOption {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(version); trimmed != "" {
			c.version = trimmed
		}
	}
}

func NewClient(service *core.Service, opts ...ClientOption) (*Client, error) {
	if service == nil {
		return nil, core.RequestBuildError("facebook: service is required", nil)
	}
	graph := service.Config().Graph
	client := &Client{
		service:   service,
		transport: service.Transport(),
		baseURL:   graph.BaseURL,
		version:   graph.Version,
		userAgent: graph.UserAgent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.transport == nil {
		return nil, core.RequestBuildError("facebook: transport adapter is required", nil)
	}
	return client, nil
}

func (c *Client) Service() *core.Service {
	return c.service
}

// AccessTokenEndpoint builds an exchange endpoint carrying the client's
// base URL, version and user agent.
func (c *Client) AccessTokenEndpoint(grantType string, appID uint64, appSecret, fbExchangeToken *string) AccessTokenEndpoint {
	return AccessTokenEndpoint{
		GrantType:       grantType,
		AppID:           appID,
		AppSecret:       appSecret,
		FBExchangeToken: fbExchangeToken,
		Version:         c.version,
		BaseURL:         c.baseURL,
		UserAgent:       c.userAgent,
	}
}

func (c *Client) DebugTokenEndpoint(inputToken, accessToken string) DebugTokenEndpoint {
	return DebugTokenEndpoint{
		InputToken:  inputToken,
		AccessToken: accessToken,
		Version:     c.version,
		BaseURL:     c.baseURL,
		UserAgent:   c.userAgent,
	}
}

// RespondEndpoint executes any endpoint with the client's transport and
// returns the unfolded three-way result.
func RespondEndpoint[T any](ctx context.Context, c *Client, ep common.Endpoint[T]) (common.Ret[T], error) {
	if c == nil {
		return nil, core.RequestBuildError("facebook: client is required", nil)
	}
	return common.Respond(ctx, c.transport, ep)
}

// GenAppAccessToken runs the client_credentials grant.
func (c *Client) GenAppAccessToken(ctx context.Context, appID uint64, appSecret string) (common.Outcome[AppAccessToken], error) {
	ep := c.AccessTokenEndpoint(GrantTypeClientCredentials, appID, &appSecret, nil)
	return run(ctx, c, "gen_app_access_token", ep, map[string]any{
		"app_id":     appID,
		"grant_type": GrantTypeClientCredentials,
		"token_kind": "app",
	}, func(res AccessTokenResponse) AppAccessToken {
		return NewAppAccessToken(res.AccessToken)
	})
}

// GetLongLivedUserAccessToken exchanges a short-lived user token. The
// short-lived token remains valid afterwards.
func (c *Client) GetLongLivedUserAccessToken(
	ctx context.Context,
	appID uint64,
	appSecret string,
	shortLived ShortLivedUserAccessToken,
) (common.Outcome[Grant[LongLivedUserAccessToken]], error) {
	exchangeToken := shortLived.Value()
	ep := c.AccessTokenEndpoint(GrantTypeFBExchangeToken, appID, &appSecret, &exchangeToken)
	return run(ctx, c, "get_long_lived_user_access_token", ep, map[string]any{
		"app_id":     appID,
		"grant_type": GrantTypeFBExchangeToken,
		"token_kind": "long_lived_user",
	}, func(res AccessTokenResponse) Grant[LongLivedUserAccessToken] {
		return newGrant(NewLongLivedUserAccessToken(res.AccessToken), res)
	})
}

func (c *Client) GenUserSessionInfoAccessToken(
	ctx context.Context,
	appID uint64,
	longLived LongLivedUserAccessToken,
) (common.Outcome[Grant[UserSessionInfoAccessToken]], error) {
	attenuate := longLived.Value()
	ep := c.AccessTokenEndpoint(GrantTypeFBAttenuateToken, appID, nil, &attenuate)
	return run(ctx, c, "gen_user_session_info_access_token", ep, map[string]any{
		"app_id":     appID,
		"grant_type": GrantTypeFBAttenuateToken,
		"token_kind": "user_session_info",
	}, func(res AccessTokenResponse) Grant[UserSessionInfoAccessToken] {
		return newGrant(NewUserSessionInfoAccessToken(res.AccessToken), res)
	})
}

func (c *Client) GenPageSessionInfoAccessToken(
	ctx context.Context,
	appID uint64,
	page PageAccessToken,
) (common.Outcome[Grant[PageSessionInfoAccessToken]], error) {
	attenuate := page.Value()
	ep := c.AccessTokenEndpoint(GrantTypeFBAttenuateToken, appID, nil, &attenuate)
	return run(ctx, c, "gen_page_session_info_access_token", ep, map[string]any{
		"app_id":     appID,
		"grant_type": GrantTypeFBAttenuateToken,
		"token_kind": "page_session_info",
	}, func(res AccessTokenResponse) Grant[PageSessionInfoAccessToken] {
		return newGrant(NewPageSessionInfoAccessToken(res.AccessToken), res)
	})
}

func (c *Client) DebugUserAccessToken(ctx context.Context, token UserToken) (common.Outcome[DebugTokenResult], error) {
	value := userTokenValue(token)
	return c.debug(ctx, "debug_user_access_token", "user", value, value)
}

// DebugUserAccessTokenViaAppAccessToken authorizes the debug call with the
// app token. Graph may refuse a user token debugging itself with code 100.
func (c *Client) DebugUserAccessTokenViaAppAccessToken(
	ctx context.Context,
	token UserToken,
	app AppAccessToken,
) (common.Outcome[DebugTokenResult], error) {
	return c.debug(ctx, "debug_user_access_token_via_app_access_token", "user", userTokenValue(token), app.Value())
}

func (c *Client) DebugAppAccessToken(ctx context.Context, app AppAccessToken) (common.Outcome[DebugTokenResult], error) {
	return c.debug(ctx, "debug_app_access_token", "app", app.Value(), app.Value())
}

func (c *Client) DebugPageAccessToken(ctx context.Context, page PageAccessToken) (common.Outcome[DebugTokenResult], error) {
	return c.debug(ctx, "debug_page_access_token", "page", page.Value(), page.Value())
}

func (c *Client) DebugUserSessionInfoAccessTokenViaAppAccessToken(
	ctx context.Context,
	token UserSessionInfoAccessToken,
	app AppAccessToken,
) (common.Outcome[DebugTokenResult], error) {
	return c.debug(ctx, "debug_user_session_info_access_token_via_app_access_token", "user_session_info", token.Value(), app.Value())
}

func (c *Client) DebugUserSessionInfoAccessTokenViaLongLivedUserAccessToken(
	ctx context.Context,
	token UserSessionInfoAccessToken,
	longLived LongLivedUserAccessToken,
) (common.Outcome[DebugTokenResult], error) {
	return c.debug(ctx, "debug_user_session_info_access_token_via_long_lived_user_access_token", "user_session_info", token.Value(), longLived.Value())
}

func (c *Client) DebugPageSessionInfoAccessTokenViaAppAccessToken(
	ctx context.Context,
	token PageSessionInfoAccessToken,
	app AppAccessToken,
) (common.Outcome[DebugTokenResult], error) {
	return c.debug(ctx, "debug_page_session_info_access_token_via_app_access_token", "page_session_info", token.Value(), app.Value())
}

func (c *Client) DebugPageSessionInfoAccessTokenViaPageAccessToken(
	ctx context.Context,
	token PageSessionInfoAccessToken,
	page PageAccessToken,
) (common.Outcome[DebugTokenResult], error) {
	return c.debug(ctx, "debug_page_session_info_access_token_via_page_access_token", "page_session_info", token.Value(), page.Value())
}

// SelfDebugUserSessionInfoAccessToken expects Graph to refuse a session-info
// token debugging itself. That refusal is the successful outcome; anything
// else, including a 200, is returned as a Failure.
func (c *Client) SelfDebugUserSessionInfoAccessToken(
	ctx context.Context,
	token UserSessionInfoAccessToken,
) (common.Outcome[common.GraphError], error) {
	return c.selfDebugSessionInfo(ctx, "self_debug_user_session_info_access_token", "user_session_info", token.Value())
}

func (c *Client) SelfDebugPageSessionInfoAccessToken(
	ctx context.Context,
	token PageSessionInfoAccessToken,
) (common.Outcome[common.GraphError], error) {
	return c.selfDebugSessionInfo(ctx, "self_debug_page_session_info_access_token", "page_session_info", token.Value())
}

func (c *Client) debug(ctx context.Context, operation, tokenKind, inputToken, accessToken string) (common.Outcome[DebugTokenResult], error) {
	ep := c.DebugTokenEndpoint(inputToken, accessToken)
	return run(ctx, c, operation, ep, map[string]any{
		"token_kind": tokenKind,
		"self_debug": inputToken == accessToken,
	}, func(res DebugTokenResponse) DebugTokenResult {
		return res.Data
	})
}

func (c *Client) selfDebugSessionInfo(ctx context.Context, operation, tokenKind, token string) (common.Outcome[common.GraphError], error) {
	startedAt := time.Now()
	fields := map[string]any{
		"token_kind": tokenKind,
		"self_debug": true,
		"request_id": c.service.NewRequestID(),
	}

	ret, err := RespondEndpoint[[]byte](ctx, c, debugOnlyProbe{DebugTokenEndpoint: c.DebugTokenEndpoint(token, token)})
	if err != nil {
		c.service.ObserveOperation(ctx, startedAt, operation, err, fields)
		return common.Outcome[common.GraphError]{}, err
	}

	var outcome common.Outcome[common.GraphError]
	switch typed := ret.(type) {
	case common.RetErrorEnvelope[[]byte]:
		if typed.StatusCode == http.StatusBadRequest && typed.Envelope.Error.IsDebugOnlyAccessToken() {
			outcome = common.Succeeded(typed.Envelope.Error)
		} else {
			outcome = common.Failed[common.GraphError](common.Failure{StatusCode: typed.StatusCode, Envelope: typed.Envelope})
		}
	case common.RetRawBody[[]byte]:
		outcome = common.Failed[common.GraphError](common.RawBodyFailure(typed.StatusCode, typed.Body))
	case common.RetOK[[]byte]:
		outcome = common.Failed[common.GraphError](common.RawBodyFailure(http.StatusOK, typed.Value))
	}
	common.ObserveOutcome(ctx, c.service, startedAt, operation, outcome.Failure, fields)
	return outcome, nil
}

// debugOnlyProbe keeps an unexpected 200 body verbatim instead of decoding it.
type debugOnlyProbe struct {
	DebugTokenEndpoint
}

func (p debugOnlyProbe) ParseResponse(res core.TransportResponse) (common.Ret[[]byte], error) {
	if res.StatusCode == http.StatusOK {
		return common.RetOK[[]byte]{Value: append([]byte(nil), res.Body...)}, nil
	}
	return common.ParseResponse[[]byte](res)
}

func run[T any, U any](
	ctx context.Context,
	c *Client,
	operation string,
	ep common.Endpoint[T],
	fields map[string]any,
	mapOK func(T) U,
) (common.Outcome[U], error) {
	return common.Run(ctx, c.service, c.transport, operation, ep, fields, mapOK)
}

func userTokenValue(token UserToken) string {
	if token == nil {
		return ""
	}
	return token.UserAccessToken().Value()
}
