package devkit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-meta-tokens/core"
)

func ValidateTransportAdapterConformance(
	ctx context.Context,
	adapter core.TransportAdapter,
	request core.TransportRequest,
) error {
	if adapter == nil {
		return fmt.Errorf("devkit: transport adapter is required")
	}
	if strings.TrimSpace(adapter.Kind()) == "" {
		return fmt.Errorf("devkit: transport adapter kind is required")
	}
	_, err := adapter.Do(ctx, request)
	return err
}

// ValidateGraphRequestConformance checks the invariants shared by every
// rendered Graph request: GET, no body, JSON accept header, a user agent,
// a versioned path and the expected query parameter order.
func ValidateGraphRequestConformance(req core.TransportRequest, path string, queryKeys ...string) error {
	if req.Method != http.MethodGet {
		return fmt.Errorf("devkit: expected GET, got %q", req.Method)
	}
	if len(req.Body) != 0 {
		return fmt.Errorf("devkit: expected empty body, got %d bytes", len(req.Body))
	}
	if req.Headers["Accept"] != "application/json" {
		return fmt.Errorf("devkit: expected Accept application/json, got %q", req.Headers["Accept"])
	}
	if strings.TrimSpace(req.Headers["User-Agent"]) == "" {
		return fmt.Errorf("devkit: expected User-Agent header")
	}
	parsed, err := url.Parse(req.URL)
	if err != nil {
		return fmt.Errorf("devkit: parse request url: %w", err)
	}
	if !strings.HasSuffix(parsed.Path, "/"+strings.Trim(path, "/")) {
		return fmt.Errorf("devkit: expected path ending in %q, got %q", path, parsed.Path)
	}
	got := QueryKeys(parsed.RawQuery)
	if len(got) != len(queryKeys) {
		return fmt.Errorf("devkit: expected query keys %v, got %v", queryKeys, got)
	}
	for i := range got {
		if got[i] != queryKeys[i] {
			return fmt.Errorf("devkit: expected query keys %v, got %v", queryKeys, got)
		}
	}
	return nil
}

// QueryKeys lists the query parameter names in wire order.
func QueryKeys(rawQuery string) []string {
	if rawQuery == "" {
		return []string{}
	}
	pairs := strings.Split(rawQuery, "&")
	keys := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		key, _, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		keys = append(keys, key)
	}
	return keys
}
