package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlConfigLoader reads the raw config map consumed by the cfgx provider.
type yamlConfigLoader struct {
	Path string
}

func (l yamlConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("metatoken: read config %s: %w", l.Path, err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("metatoken: parse config %s: %w", l.Path, err)
	}
	return raw, nil
}
