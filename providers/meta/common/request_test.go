package common

import (
	"encoding/json"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-meta-tokens/core"
)

func TestBuildURL(t *testing.T) {
	got, err := BuildURL("", "", "oauth/access_token", []QueryParam{
		{Key: "grant_type", Value: "client_credentials"},
		{Key: "client_id", Value: "123"},
		{Key: "client_secret", Value: "a b&c"},
	})
	if err != nil {
		t.Fatalf("build url: %v", err)
	}
	want := "https://graph.facebook.com/v15.0/oauth/access_token?grant_type=client_credentials&client_id=123&client_secret=a+b%26c"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	got, err = BuildURL("http://127.0.0.1:8080/graph/", "v18.0", "/debug_token", nil)
	if err != nil {
		t.Fatalf("build url with base: %v", err)
	}
	if got != "http://127.0.0.1:8080/graph/v18.0/debug_token" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestBuildURL_RejectsBadInput(t *testing.T) {
	cases := map[string][2]string{
		"bad scheme":    {"ftp://graph.facebook.com", "v15.0"},
		"no host":       {"https://", "v15.0"},
		"bad version":   {"", "v15.0/../x"},
		"space version": {"", "v 15"},
		"unparseable":   {"http://[::1", "v15.0"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildURL(input[0], input[1], "me", nil)
			if err == nil {
				t.Fatalf("expected build error")
			}
			var rich *goerrors.Error
			if !goerrors.As(err, &rich) || rich.TextCode != core.ServiceErrorRequestBuildFailed {
				t.Fatalf("expected request build error, got %v", err)
			}
		})
	}
}

func TestGraphRequestRender(t *testing.T) {
	req, err := GraphRequest{Path: "me", UserAgent: "custom-agent"}.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if req.Method != "GET" || len(req.Body) != 0 {
		t.Fatalf("expected bodiless GET, got %#v", req)
	}
	if req.Headers["User-Agent"] != "custom-agent" || req.Headers["Accept"] != MIMEJSON {
		t.Fatalf("unexpected headers %#v", req.Headers)
	}
	req, _ = GraphRequest{Path: "me"}.Render()
	if req.Headers["User-Agent"] != DefaultUserAgent {
		t.Fatalf("expected default user agent, got %q", req.Headers["User-Agent"])
	}
}

func TestCursorPaging(t *testing.T) {
	var paging CursorPaging
	if err := json.Unmarshal([]byte(`{"cursors":{"before":"b","after":"a"}}`), &paging); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := paging.NextCursor(); ok {
		t.Fatalf("expected no next cursor without next link")
	}

	if err := json.Unmarshal([]byte(`{"cursors":{"after":"a"},"next":"https://graph.facebook.com/next"}`), &paging); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cursor, ok := paging.NextCursor(); !ok || cursor != "a" {
		t.Fatalf("expected next cursor a, got %q", cursor)
	}

	if err := json.Unmarshal([]byte(`{"next":"x"}`), &paging); err == nil {
		t.Fatalf("expected missing cursors to fail")
	}
}

func TestFlexUint64(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    uint64
		wantErr bool
	}{
		"number":       {raw: `123`, want: 123},
		"string":       {raw: `"10000000000001"`, want: 10000000000001},
		"max":          {raw: `"18446744073709551615"`, want: 18446744073709551615},
		"negative":     {raw: `"-1"`, wantErr: true},
		"plus sign":    {raw: `"+1"`, want: 1},
		"double plus":  {raw: `"++1"`, wantErr: true},
		"bare plus":    {raw: `"+"`, wantErr: true},
		"float":        {raw: `1.5`, wantErr: true},
		"null":         {raw: `null`, wantErr: true},
		"empty string": {raw: `""`, wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var value FlexUint64
			err := json.Unmarshal([]byte(tc.raw), &value)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if value.Uint64() != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, value.Uint64())
			}
		})
	}
	encoded, _ := json.Marshal(FlexUint64(42))
	if string(encoded) != `"42"` {
		t.Fatalf("expected string encoding, got %s", encoded)
	}
}

func TestNormalizeAndMissingScopes(t *testing.T) {
	scopes := NormalizeScopes([]string{" Email", "public_profile", "email", ""})
	if len(scopes) != 2 || scopes[0] != "email" || scopes[1] != "public_profile" {
		t.Fatalf("unexpected normalized scopes %v", scopes)
	}
	missing := MissingScopes([]string{"email"}, "email", "pages_show_list")
	if len(missing) != 1 || missing[0] != "pages_show_list" {
		t.Fatalf("unexpected missing scopes %v", missing)
	}
}
