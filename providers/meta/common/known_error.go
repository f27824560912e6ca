package common

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-meta-tokens/core"
)

// KnownErrorCase is the closed set of recoverable conditions recognized in
// Graph error payloads.
type KnownErrorCase string

const (
	APITooManyCalls                      KnownErrorCase = "api_too_many_calls"
	APIUserTooManyCalls                  KnownErrorCase = "api_user_too_many_calls"
	AccessTokenExpiredOrRevokedOrInvalid KnownErrorCase = "access_token_expired_or_revoked_or_invalid"
	PermissionNotGrantedOrRemoved        KnownErrorCase = "permission_not_granted_or_removed"
	RetryLater                           KnownErrorCase = "retry_later"
)

func (c KnownErrorCase) String() string {
	return string(c)
}

func (c KnownErrorCase) IsAPITooManyCalls() bool { return c == APITooManyCalls }

func (c KnownErrorCase) IsAPIUserTooManyCalls() bool { return c == APIUserTooManyCalls }

func (c KnownErrorCase) IsAccessTokenExpiredOrRevokedOrInvalid() bool {
	return c == AccessTokenExpiredOrRevokedOrInvalid
}

func (c KnownErrorCase) IsPermissionNotGrantedOrRemoved() bool {
	return c == PermissionNotGrantedOrRemoved
}

func (c KnownErrorCase) IsRetryLater() bool { return c == RetryLater }

// Classify maps a Graph error onto a KnownErrorCase. Subcodes 463 and 467
// win over the code; code 102 only counts when no subcode is present.
func Classify(e GraphError) (KnownErrorCase, bool) {
	if e.ErrorSubcode != nil {
		switch *e.ErrorSubcode {
		case 463, 467:
			return AccessTokenExpiredOrRevokedOrInvalid, true
		}
	}

	switch {
	case e.Code == 102:
		if e.ErrorSubcode == nil {
			return AccessTokenExpiredOrRevokedOrInvalid, true
		}
	case e.Code == 2:
		return RetryLater, true
	case e.Code == 4:
		return APITooManyCalls, true
	case e.Code == 17:
		return APIUserTooManyCalls, true
	case e.Code == 10:
		return PermissionNotGrantedOrRemoved, true
	case e.Code == 190:
		return AccessTokenExpiredOrRevokedOrInvalid, true
	case e.Code >= 200 && e.Code <= 299:
		return PermissionNotGrantedOrRemoved, true
	}
	return "", false
}

// ToServiceError renders the case as a service error envelope carrying the
// Graph diagnostics as metadata.
func (c KnownErrorCase) ToServiceError(graphErr GraphError) *goerrors.Error {
	return c.serviceError(goerrors.New, graphErr)
}

func (c KnownErrorCase) serviceError(newError core.ErrorFactory, graphErr GraphError) *goerrors.Error {
	category := goerrors.CategoryExternal
	code := http.StatusBadGateway
	textCode := core.ServiceErrorExternalFailure
	switch c {
	case APITooManyCalls, APIUserTooManyCalls:
		category = goerrors.CategoryRateLimit
		code = http.StatusTooManyRequests
		textCode = core.ServiceErrorRateLimited
	case AccessTokenExpiredOrRevokedOrInvalid:
		category = goerrors.CategoryAuth
		code = http.StatusUnauthorized
		textCode = core.ServiceErrorUnauthorized
	case PermissionNotGrantedOrRemoved:
		category = goerrors.CategoryAuthz
		code = http.StatusForbidden
		textCode = core.ServiceErrorForbidden
	case RetryLater:
		code = http.StatusServiceUnavailable
		textCode = core.ServiceErrorRetryLater
	}

	metadata := graphErrorMetadata(graphErr)
	if c != "" {
		metadata["known_error_case"] = c.String()
	}
	return newError(graphErr.Message, category).
		WithCode(code).
		WithTextCode(textCode).
		WithMetadata(metadata)
}

func graphErrorMetadata(graphErr GraphError) map[string]any {
	metadata := map[string]any{"graph_code": graphErr.Code}
	if graphErr.ErrorSubcode != nil {
		metadata["graph_subcode"] = *graphErr.ErrorSubcode
	}
	if graphErr.Type != "" {
		metadata["graph_type"] = string(graphErr.Type)
	}
	if graphErr.FBTraceID != "" {
		metadata["fbtrace_id"] = graphErr.FBTraceID
	}
	return metadata
}
