package facebook

import (
	"strings"

	"github.com/goliatone/go-meta-tokens/core"
	"github.com/goliatone/go-meta-tokens/providers/meta/common"
)

const debugTokenPath = "debug_token"

// DebugTokenEndpoint is GET /{version}/debug_token. AccessToken authorizes the
// call and may equal InputToken for a self-debug.
type DebugTokenEndpoint struct {
	InputToken  string
	AccessToken string

	Version   string
	BaseURL   string
	UserAgent string
}

type DebugTokenResponse struct {
	Data DebugTokenResult `json:"data"`
}

func (r *DebugTokenResponse) UnmarshalJSON(data []byte) error {
	fields, err := common.DecodeObject(data, "debug token response")
	if err != nil {
		return err
	}
	var decoded DebugTokenResult
	if err := common.RequireField(fields, "data", &decoded); err != nil {
		return err
	}
	r.Data = decoded
	return nil
}

func (e DebugTokenEndpoint) RenderRequest() (core.TransportRequest, error) {
	if strings.TrimSpace(e.InputToken) == "" {
		return core.TransportRequest{}, core.RequestBuildError("facebook: input_token is required", nil)
	}
	if strings.TrimSpace(e.AccessToken) == "" {
		return core.TransportRequest{}, core.RequestBuildError("facebook: access_token is required", nil)
	}
	return common.GraphRequest{
		BaseURL: e.BaseURL,
		Version: e.Version,
		Path:    debugTokenPath,
		Query: []common.QueryParam{
			{Key: "input_token", Value: e.InputToken},
			{Key: "access_token", Value: e.AccessToken},
		},
		UserAgent: e.UserAgent,
	}.Render()
}

func (e DebugTokenEndpoint) ParseResponse(res core.TransportResponse) (common.Ret[DebugTokenResponse], error) {
	return common.ParseResponse[DebugTokenResponse](res)
}

var _ common.Endpoint[DebugTokenResponse] = DebugTokenEndpoint{}
