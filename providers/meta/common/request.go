package common

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-meta-tokens/core"
)

const (
	DefaultBaseURL   = core.DefaultGraphBaseURL
	DefaultVersion   = core.DefaultGraphVersion
	DefaultUserAgent = core.DefaultUserAgent
	MIMEJSON         = "application/json"
)

// QueryParam is one key/value pair of an ordered query string.
type QueryParam struct {
	Key   string
	Value string
}

// GraphRequest describes a GET against a versioned Graph path.
type GraphRequest struct {
	BaseURL   string
	Version   string
	Path      string
	Query     []QueryParam
	UserAgent string
}

// Render validates the base URL and version, then produces the transport
// request with the query parameters encoded in the given order.
func (r GraphRequest) Render() (core.TransportRequest, error) {
	target, err := BuildURL(r.BaseURL, r.Version, r.Path, r.Query)
	if err != nil {
		return core.TransportRequest{}, err
	}
	userAgent := strings.TrimSpace(r.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return core.TransportRequest{
		Method: http.MethodGet,
		URL:    target,
		Headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     MIMEJSON,
		},
	}, nil
}

func BuildURL(baseURL, version, path string, params []QueryParam) (string, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	version = strings.TrimSpace(version)
	if version == "" {
		version = DefaultVersion
	}
	if !core.ValidGraphVersion(version) {
		return "", core.RequestBuildError("common: graph version is malformed", map[string]any{"version": version})
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", core.RequestBuildError("common: graph base url is invalid", map[string]any{"base_url": baseURL})
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/" + version + "/" + strings.Trim(path, "/")
	parsed.RawQuery = EncodeQuery(params)
	return parsed.String(), nil
}

// EncodeQuery form-encodes params without reordering them.
func EncodeQuery(params []QueryParam) string {
	if len(params) == 0 {
		return ""
	}
	var builder strings.Builder
	for i, param := range params {
		if i > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(url.QueryEscape(param.Key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(param.Value))
	}
	return builder.String()
}
