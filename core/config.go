package core

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	DefaultGraphBaseURL   = "https://graph.facebook.com"
	DefaultGraphVersion   = "v15.0"
	DefaultUserAgent      = "go-meta-tokens"
	DefaultTimeoutSeconds = 30
)

type GraphConfig struct {
	BaseURL              string `koanf:"base_url" mapstructure:"base_url"`
	Version              string `koanf:"version" mapstructure:"version"`
	UserAgent            string `koanf:"user_agent" mapstructure:"user_agent"`
	TimeoutSeconds       int    `koanf:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxResponseBodyBytes int64  `koanf:"max_response_body_bytes" mapstructure:"max_response_body_bytes"`
}

type Config struct {
	ServiceName string      `koanf:"service_name" mapstructure:"service_name"`
	Graph       GraphConfig `koanf:"graph" mapstructure:"graph"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "metatokens",
		Graph: GraphConfig{
			BaseURL:        DefaultGraphBaseURL,
			Version:        DefaultGraphVersion,
			UserAgent:      DefaultUserAgent,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	return c.Graph.Validate()
}

func (c GraphConfig) Validate() error {
	if base := strings.TrimSpace(c.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil {
			return fmt.Errorf("core: graph.base_url is invalid: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("core: graph.base_url scheme %q is invalid", parsed.Scheme)
		}
		if parsed.Host == "" {
			return fmt.Errorf("core: graph.base_url host is required")
		}
	}
	if version := strings.TrimSpace(c.Version); version != "" && !ValidGraphVersion(version) {
		return fmt.Errorf("core: graph.version %q is invalid", version)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("core: graph.timeout_seconds must not be negative")
	}
	if c.MaxResponseBodyBytes < 0 {
		return fmt.Errorf("core: graph.max_response_body_bytes must not be negative")
	}
	return nil
}

// ValidGraphVersion accepts path-safe version segments such as "v15.0".
func ValidGraphVersion(version string) bool {
	if version == "" {
		return false
	}
	for _, r := range version {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
