package devkit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/goliatone/go-meta-tokens/core"
)

func TestFakeTransportAdapter_ScriptsAndCapturesRequests(t *testing.T) {
	adapter := NewFakeTransportAdapter("rest",
		TransportScript{Response: core.TransportResponse{StatusCode: 429}},
		TransportScript{Response: core.TransportResponse{StatusCode: 200}},
	)

	first, err := adapter.Do(context.Background(), core.TransportRequest{
		Method: "GET",
		URL:    "https://graph.facebook.com/v15.0/debug_token?input_token=a&access_token=b",
	})
	if err != nil {
		t.Fatalf("first fake call: %v", err)
	}
	if first.StatusCode != 429 {
		t.Fatalf("expected first scripted status 429, got %d", first.StatusCode)
	}

	second, err := adapter.Do(context.Background(), core.TransportRequest{
		Method: "GET",
		URL:    "https://graph.facebook.com/v15.0/debug_token?input_token=c&access_token=d",
	})
	if err != nil {
		t.Fatalf("second fake call: %v", err)
	}
	if second.StatusCode != 200 {
		t.Fatalf("expected second scripted status 200, got %d", second.StatusCode)
	}

	third, _ := adapter.Do(context.Background(), core.TransportRequest{Method: "GET"})
	if third.StatusCode != 200 {
		t.Fatalf("expected last script to repeat, got %d", third.StatusCode)
	}

	requests := adapter.Requests()
	if len(requests) != 3 {
		t.Fatalf("expected three captured requests, got %d", len(requests))
	}
	last, ok := adapter.LastRequest()
	if !ok || last.Method != "GET" || last.URL != "" {
		t.Fatalf("unexpected last request %#v", last)
	}
}

func TestFakeTransportAdapter_HonorsCanceledContext(t *testing.T) {
	adapter := NewFakeTransportAdapter("rest", JSONResponse(200, FixtureAppAccessToken))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.Do(ctx, core.TransportRequest{Method: "GET"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if len(adapter.Requests()) != 0 {
		t.Fatalf("expected canceled call not to be recorded")
	}
}

func TestFixturesAreValidJSON(t *testing.T) {
	fixtures := map[string]string{
		"app_access_token":          FixtureAppAccessToken,
		"long_lived_user_token":     FixtureLongLivedUserAccessToken,
		"session_info_token":        FixtureSessionInfoAccessToken,
		"debug_app":                 FixtureDebugTokenApp,
		"debug_user":                FixtureDebugTokenUser,
		"debug_user_never_expires":  FixtureDebugTokenUserNeverExpires,
		"debug_page":                FixtureDebugTokenPage,
		"debug_invalid":             FixtureDebugTokenInvalid,
		"debug_only":                FixtureDebugOnlyAccessToken,
		"session_invalidated":       FixtureSessionHasBeenInvalidated,
		"session_expired":           FixtureSessionHasExpired,
		"session_key_malformed":     FixtureSessionKeyMalformed,
		"missing_app_access_token":  FixtureMissingAppAccessToken,
		"application_request_limit": FixtureApplicationRequestLimit,
		"pages_search":              FixturePagesSearch,
		"ad_hoc_error":              GraphErrorFixture{Message: "x", Code: 2, Subcode: IntPtr(1)}.Body(),
	}
	for name, body := range fixtures {
		t.Run(name, func(t *testing.T) {
			if !json.Valid([]byte(body)) {
				t.Fatalf("fixture %s is not valid JSON", name)
			}
		})
	}
	if json.Valid([]byte(FixtureGatewayHTML)) {
		t.Fatalf("expected html fixture to be invalid JSON")
	}
}

func TestValidateGraphRequestConformance(t *testing.T) {
	req := core.TransportRequest{
		Method:  "GET",
		URL:     "https://graph.facebook.com/v15.0/oauth/access_token?grant_type=client_credentials&client_id=1&client_secret=s",
		Headers: map[string]string{"Accept": "application/json", "User-Agent": "go-meta-tokens"},
	}
	if err := ValidateGraphRequestConformance(req, "oauth/access_token", "grant_type", "client_id", "client_secret"); err != nil {
		t.Fatalf("expected conformance, got %v", err)
	}
	if err := ValidateGraphRequestConformance(req, "oauth/access_token", "client_id", "grant_type", "client_secret"); err == nil {
		t.Fatalf("expected order mismatch to fail")
	}
	req.Body = []byte("x")
	if err := ValidateGraphRequestConformance(req, "oauth/access_token", "grant_type", "client_id", "client_secret"); err == nil {
		t.Fatalf("expected body to fail conformance")
	}
}

func TestValidateTransportAdapterConformance(t *testing.T) {
	adapter := NewFakeTransportAdapter("rest", TransportScript{
		Response: core.TransportResponse{StatusCode: 200},
	})
	if err := ValidateTransportAdapterConformance(context.Background(), adapter, core.TransportRequest{
		Method: "GET",
		URL:    "https://graph.facebook.com/v15.0/me",
	}); err != nil {
		t.Fatalf("validate transport adapter conformance: %v", err)
	}
	if err := ValidateTransportAdapterConformance(context.Background(), nil, core.TransportRequest{}); err == nil {
		t.Fatalf("expected nil adapter to fail")
	}
}
