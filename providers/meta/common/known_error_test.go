package common

import (
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-meta-tokens/core"
)

func intPtr(value int) *int {
	return &value
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		code    int
		subcode *int
		want    KnownErrorCase
		ok      bool
	}{
		{name: "subcode 463 wins over code", code: 4, subcode: intPtr(463), want: AccessTokenExpiredOrRevokedOrInvalid, ok: true},
		{name: "subcode 467", code: 1, subcode: intPtr(467), want: AccessTokenExpiredOrRevokedOrInvalid, ok: true},
		{name: "code 102 without subcode", code: 102, want: AccessTokenExpiredOrRevokedOrInvalid, ok: true},
		{name: "code 102 with other subcode", code: 102, subcode: intPtr(1), ok: false},
		{name: "retry later", code: 2, want: RetryLater, ok: true},
		{name: "api too many calls", code: 4, want: APITooManyCalls, ok: true},
		{name: "api too many calls ignores unknown subcode", code: 4, subcode: intPtr(1349193), want: APITooManyCalls, ok: true},
		{name: "user too many calls", code: 17, want: APIUserTooManyCalls, ok: true},
		{name: "permission 10", code: 10, want: PermissionNotGrantedOrRemoved, ok: true},
		{name: "token 190", code: 190, want: AccessTokenExpiredOrRevokedOrInvalid, ok: true},
		{name: "permission 200", code: 200, want: PermissionNotGrantedOrRemoved, ok: true},
		{name: "permission 250", code: 250, want: PermissionNotGrantedOrRemoved, ok: true},
		{name: "permission 299", code: 299, want: PermissionNotGrantedOrRemoved, ok: true},
		{name: "300 unknown", code: 300, ok: false},
		{name: "199 unknown", code: 199, ok: false},
		{name: "100 unknown", code: 100, ok: false},
		{name: "sentinel unknown", code: CodeStatusCodeAndBody, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Classify(GraphError{Message: "m", Code: tc.code, ErrorSubcode: tc.subcode})
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v (%q)", tc.ok, ok, got)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestKnownErrorCasePredicates(t *testing.T) {
	if !APITooManyCalls.IsAPITooManyCalls() || APITooManyCalls.IsAPIUserTooManyCalls() {
		t.Fatalf("api too many calls predicate mismatch")
	}
	if !APIUserTooManyCalls.IsAPIUserTooManyCalls() {
		t.Fatalf("api user too many calls predicate mismatch")
	}
	if !AccessTokenExpiredOrRevokedOrInvalid.IsAccessTokenExpiredOrRevokedOrInvalid() {
		t.Fatalf("token predicate mismatch")
	}
	if !PermissionNotGrantedOrRemoved.IsPermissionNotGrantedOrRemoved() {
		t.Fatalf("permission predicate mismatch")
	}
	if !RetryLater.IsRetryLater() || RetryLater.String() != "retry_later" {
		t.Fatalf("retry later predicate mismatch")
	}
}

func TestKnownErrorCase_ToServiceError(t *testing.T) {
	cases := []struct {
		known    KnownErrorCase
		category goerrors.Category
		status   int
		textCode string
	}{
		{known: APITooManyCalls, category: goerrors.CategoryRateLimit, status: http.StatusTooManyRequests, textCode: core.ServiceErrorRateLimited},
		{known: APIUserTooManyCalls, category: goerrors.CategoryRateLimit, status: http.StatusTooManyRequests, textCode: core.ServiceErrorRateLimited},
		{known: AccessTokenExpiredOrRevokedOrInvalid, category: goerrors.CategoryAuth, status: http.StatusUnauthorized, textCode: core.ServiceErrorUnauthorized},
		{known: PermissionNotGrantedOrRemoved, category: goerrors.CategoryAuthz, status: http.StatusForbidden, textCode: core.ServiceErrorForbidden},
		{known: RetryLater, category: goerrors.CategoryExternal, status: http.StatusServiceUnavailable, textCode: core.ServiceErrorRetryLater},
	}
	for _, tc := range cases {
		t.Run(tc.known.String(), func(t *testing.T) {
			err := tc.known.ToServiceError(GraphError{Message: "graph says no", Code: 1, FBTraceID: "trace"})
			if err.Category != tc.category {
				t.Fatalf("expected category %q, got %q", tc.category, err.Category)
			}
			if err.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, err.Code)
			}
			if err.TextCode != tc.textCode {
				t.Fatalf("expected text code %q, got %q", tc.textCode, err.TextCode)
			}
			if err.Metadata["fbtrace_id"] != "trace" || err.Metadata["known_error_case"] != tc.known.String() {
				t.Fatalf("expected graph metadata, got %#v", err.Metadata)
			}
		})
	}
}
