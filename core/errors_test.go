package core

import (
	stderrors "errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestServiceErrorMapper_AssignsStableCodes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category goerrors.Category
		textCode string
		status   int
	}{
		{
			name:     "rate limit",
			err:      stderrors.New("graph: application request limit reached, too many calls"),
			category: goerrors.CategoryRateLimit,
			textCode: ServiceErrorRateLimited,
			status:   http.StatusTooManyRequests,
		},
		{
			name:     "timeout",
			err:      stderrors.New("dial tcp: i/o timeout"),
			category: goerrors.CategoryExternal,
			textCode: ServiceErrorExternalFailure,
			status:   http.StatusBadGateway,
		},
		{
			name:     "bad input",
			err:      stderrors.New("facebook: app id is required"),
			category: goerrors.CategoryBadInput,
			textCode: ServiceErrorBadInput,
			status:   http.StatusBadRequest,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := serviceErrorMapper(tc.err)
			if mapped.Category != tc.category {
				t.Fatalf("expected category %q, got %q", tc.category, mapped.Category)
			}
			if mapped.TextCode != tc.textCode {
				t.Fatalf("expected text code %q, got %q", tc.textCode, mapped.TextCode)
			}
			if mapped.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, mapped.Code)
			}
		})
	}
}

func TestServiceErrorMapper_PreservesRichErrors(t *testing.T) {
	original := goerrors.New("token expired", goerrors.CategoryAuth).
		WithTextCode(ServiceErrorUnauthorized)
	mapped := MapError(original)
	if mapped != original {
		t.Fatalf("expected rich error to pass through")
	}
	if mapped.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 to be filled in, got %d", mapped.Code)
	}

	if MapError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestRequestBuildError(t *testing.T) {
	err := RequestBuildError("facebook: app id must be non-zero", map[string]any{"field": "client_id"})
	if err.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input category, got %q", err.Category)
	}
	if err.TextCode != ServiceErrorRequestBuildFailed {
		t.Fatalf("expected request build text code, got %q", err.TextCode)
	}
	if err.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", err.Code)
	}
	if err.Metadata["field"] != "client_id" {
		t.Fatalf("expected metadata to be attached, got %#v", err.Metadata)
	}
}

func TestResponseParseError(t *testing.T) {
	source := stderrors.New("unexpected end of JSON input")
	err := ResponseParseError(source, "facebook: decode access token response", nil)
	if err.TextCode != ServiceErrorResponseParseFailed {
		t.Fatalf("expected parse text code, got %q", err.TextCode)
	}
	if err.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", err.Code)
	}
	if err.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %q", err.Category)
	}

	bare := ResponseParseError(nil, "facebook: missing access_token", map[string]any{"field": "access_token"})
	if bare.Message != "facebook: missing access_token" {
		t.Fatalf("unexpected message %q", bare.Message)
	}
}
