package metatokens

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-meta-tokens/providers/devkit"
	"github.com/goliatone/go-meta-tokens/providers/meta/pages"
	"github.com/goliatone/go-meta-tokens/transport"
)

func TestNew_DefaultsToRESTAdapterOverGraphConfig(t *testing.T) {
	var gotPath, gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(devkit.FixtureAppAccessToken))
	}))
	defer server.Close()

	facade, err := New(Config{Graph: GraphConfig{BaseURL: server.URL, Version: "v18.0", UserAgent: "facade-tests"}})
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	if _, ok := facade.Transport().(*transport.RESTAdapter); !ok {
		t.Fatalf("expected REST adapter, got %T", facade.Transport())
	}

	outcome, err := facade.Tokens().GenAppAccessToken(context.Background(), 123456789, "s3cr3t")
	if err != nil {
		t.Fatalf("gen app access token: %v", err)
	}
	if !outcome.OK() || outcome.Value.Value() != "123456789|AbCdEfGhIjKlMnOpQrStUvWxYz0" {
		t.Fatalf("unexpected outcome %#v", outcome)
	}
	if gotPath != "/v18.0/oauth/access_token" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotQuery != "grant_type=client_credentials&client_id=123456789&client_secret=s3cr3t" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if gotAgent != "facade-tests" {
		t.Fatalf("unexpected user agent %q", gotAgent)
	}
}

func TestNew_SharesInjectedTransport(t *testing.T) {
	adapter := devkit.NewFakeTransportAdapter("fake", devkit.JSONResponse(200, devkit.FixturePagesSearch))
	facade, err := New(DefaultConfig(), WithTransport(adapter))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	if facade.Transport() != adapter {
		t.Fatalf("expected injected adapter to be shared")
	}
	outcome, err := facade.Pages().Search(context.Background(), pages.SearchQuery{Q: "coffee", AccessToken: "EAAGuser"})
	if err != nil || !outcome.OK() {
		t.Fatalf("unexpected search result %#v err=%v", outcome, err)
	}
	if len(adapter.Requests()) != 1 {
		t.Fatalf("expected one request through the injected adapter")
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{Graph: GraphConfig{BaseURL: "ftp://graph.facebook.com"}}); err == nil {
		t.Fatalf("expected invalid base url to fail")
	}
	if _, err := New(Config{Graph: GraphConfig{Version: "v15/0"}}); err == nil {
		t.Fatalf("expected invalid version to fail")
	}
	if _, err := NewFacade(nil); err == nil {
		t.Fatalf("expected nil service to fail")
	}
}
