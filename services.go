package metatokens

import (
	"github.com/goliatone/go-meta-tokens/core"
	"github.com/goliatone/go-meta-tokens/providers/meta/common"
	"github.com/goliatone/go-meta-tokens/providers/meta/facebook"
)

type Config = core.Config

type GraphConfig = core.GraphConfig

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies
type TransportAdapter = core.TransportAdapter
type MetricsRecorder = core.MetricsRecorder

type GraphError = common.GraphError
type KnownErrorCase = common.KnownErrorCase
type Failure = common.Failure

type AppAccessToken = facebook.AppAccessToken
type ShortLivedUserAccessToken = facebook.ShortLivedUserAccessToken
type LongLivedUserAccessToken = facebook.LongLivedUserAccessToken
type PageAccessToken = facebook.PageAccessToken
type UserSessionInfoAccessToken = facebook.UserSessionInfoAccessToken
type PageSessionInfoAccessToken = facebook.PageSessionInfoAccessToken
type DebugTokenResult = facebook.DebugTokenResult

var (
	WithLogger             = core.WithLogger
	WithLoggerProvider     = core.WithLoggerProvider
	WithMetricsRecorder    = core.WithMetricsRecorder
	WithErrorFactory       = core.WithErrorFactory
	WithErrorMapper        = core.WithErrorMapper
	WithConfigProvider     = core.WithConfigProvider
	WithOptionsResolver    = core.WithOptionsResolver
	WithTransport          = core.WithTransport
	WithRequestIDGenerator = core.WithRequestIDGenerator
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}
