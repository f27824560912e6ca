package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ServiceErrorBadInput            = "SERVICE_BAD_INPUT"
	ServiceErrorRequestBuildFailed  = "SERVICE_REQUEST_BUILD_FAILED"
	ServiceErrorResponseParseFailed = "SERVICE_RESPONSE_PARSE_FAILED"
	ServiceErrorExternalFailure     = "SERVICE_EXTERNAL_FAILURE"
	ServiceErrorUnauthorized        = "SERVICE_UNAUTHORIZED"
	ServiceErrorForbidden           = "SERVICE_FORBIDDEN"
	ServiceErrorRateLimited         = "SERVICE_RATE_LIMITED"
	ServiceErrorRetryLater          = "SERVICE_RETRY_LATER"
	ServiceErrorOperationFailed     = "SERVICE_OPERATION_FAILED"
	ServiceErrorInternal            = "SERVICE_INTERNAL_ERROR"
)

// RequestBuildError reports a request that could not be rendered from the
// caller's input. It never reaches the network.
func RequestBuildError(message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ServiceErrorRequestBuildFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// ResponseParseError reports a success response whose body does not match the
// expected shape.
func ResponseParseError(source error, message string, metadata map[string]any) *goerrors.Error {
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, goerrors.CategoryExternal)
	} else {
		err = goerrors.Wrap(source, goerrors.CategoryExternal, message)
	}
	err = err.WithCode(http.StatusBadGateway).WithTextCode(ServiceErrorResponseParseFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// MapError normalizes any error into the service envelope.
func MapError(err error) *goerrors.Error {
	return serviceErrorMapper(err)
}

func serviceErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureServiceErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "throttl"), strings.Contains(msg, "rate limit"), strings.Contains(msg, "too many calls"):
		return newServiceError(err.Error(), goerrors.CategoryRateLimit, ServiceErrorRateLimited)
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "connection refused"), strings.Contains(msg, "timeout"):
		return newServiceError(err.Error(), goerrors.CategoryExternal, ServiceErrorExternalFailure)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "malformed"):
		return newServiceError(err.Error(), goerrors.CategoryBadInput, ServiceErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureServiceErrorEnvelope(mapped)
}

func newServiceError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureServiceErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureServiceErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = serviceHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultServiceTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultServiceTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ServiceErrorBadInput
	case goerrors.CategoryAuth:
		return ServiceErrorUnauthorized
	case goerrors.CategoryAuthz:
		return ServiceErrorForbidden
	case goerrors.CategoryRateLimit:
		return ServiceErrorRateLimited
	case goerrors.CategoryOperation:
		return ServiceErrorOperationFailed
	case goerrors.CategoryExternal:
		return ServiceErrorExternalFailure
	default:
		return ServiceErrorInternal
	}
}

func serviceHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
