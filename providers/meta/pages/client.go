package pages

import (
	"context"

	"github.com/goliatone/go-meta-tokens/core"
	"github.com/goliatone/go-meta-tokens/providers/meta/common"
)

// Client searches public pages with a user or app access token.
type Client struct {
	service   *core.Service
	transport core.TransportAdapter
	graph     core.GraphConfig
}

// NewClient uses adapter when given, otherwise the service transport.
func NewClient(service *core.Service, adapter core.TransportAdapter) (*Client, error) {
	if service == nil {
		return nil, core.RequestBuildError("pages: service is required", nil)
	}
	if adapter == nil {
		adapter = service.Transport()
	}
	if adapter == nil {
		return nil, core.RequestBuildError("pages: transport adapter is required", nil)
	}
	return &Client{service: service, transport: adapter, graph: service.Config().Graph}, nil
}

type SearchQuery struct {
	Q           string
	AccessToken string
	Limit       int
	After       string
}

func (c *Client) SearchEndpoint(query SearchQuery) SearchEndpoint {
	return SearchEndpoint{
		Q:           query.Q,
		AccessToken: query.AccessToken,
		Limit:       query.Limit,
		After:       query.After,
		Version:     c.graph.Version,
		BaseURL:     c.graph.BaseURL,
		UserAgent:   c.graph.UserAgent,
	}
}

func (c *Client) Search(ctx context.Context, query SearchQuery) (common.Outcome[SearchResponse], error) {
	fields := map[string]any{
		"limit":     query.Limit,
		"has_after": query.After != "",
	}
	return common.Run(ctx, c.service, c.transport, "pages_search", c.SearchEndpoint(query), fields, func(res SearchResponse) SearchResponse {
		return res
	})
}
