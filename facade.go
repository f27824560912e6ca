// Package metatokens wires the Graph token workflows behind one entry point.
package metatokens

import (
	"fmt"

	"github.com/goliatone/go-meta-tokens/core"
	"github.com/goliatone/go-meta-tokens/providers/meta/facebook"
	"github.com/goliatone/go-meta-tokens/providers/meta/pages"
	"github.com/goliatone/go-meta-tokens/transport"
)

// Facade bundles the token client and the pages client over one service.
type Facade struct {
	service *core.Service
	tokens  *facebook.Client
	pages   *pages.Client
	adapter core.TransportAdapter
}

// New resolves the service configuration and builds both clients. When no
// transport option is given, a REST adapter is built from the graph config.
func New(cfg Config, opts ...Option) (*Facade, error) {
	service, err := core.NewService(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return NewFacade(service)
}

func NewFacade(service *core.Service) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("metatokens: service is required")
	}
	adapter := service.Transport()
	if adapter == nil {
		adapter = transport.NewRESTAdapterFromConfig(service.Config().Graph)
	}

	tokens, err := facebook.NewClient(service, facebook.WithTransport(adapter))
	if err != nil {
		return nil, err
	}
	pagesClient, err := pages.NewClient(service, adapter)
	if err != nil {
		return nil, err
	}
	return &Facade{
		service: service,
		tokens:  tokens,
		pages:   pagesClient,
		adapter: adapter,
	}, nil
}

func (f *Facade) Tokens() *facebook.Client {
	if f == nil {
		return nil
	}
	return f.tokens
}

func (f *Facade) Pages() *pages.Client {
	if f == nil {
		return nil
	}
	return f.pages
}

func (f *Facade) Service() *core.Service {
	if f == nil {
		return nil
	}
	return f.service
}

// Transport returns the adapter shared by both clients.
func (f *Facade) Transport() core.TransportAdapter {
	if f == nil {
		return nil
	}
	return f.adapter
}
