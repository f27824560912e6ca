package transport

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-meta-tokens/core"
)

// transportFailure describes a request that never produced a Graph response.
type transportFailure struct {
	source   error
	message  string
	category goerrors.Category
	code     int
	metadata map[string]any
}

func (f transportFailure) err() error {
	var err *goerrors.Error
	if f.source == nil {
		err = goerrors.New(f.message, f.category)
	} else {
		err = goerrors.Wrap(f.source, f.category, f.message)
	}
	err = err.WithCode(f.code).WithTextCode(transportTextCode(f.category, f.code))
	if len(f.metadata) > 0 {
		err = err.WithMetadata(f.metadata)
	}
	return err
}

func transportError(message string, category goerrors.Category, code int, metadata map[string]any) error {
	return transportFailure{message: message, category: category, code: code, metadata: metadata}.err()
}

func transportWrapError(source error, category goerrors.Category, message string, code int, metadata map[string]any) error {
	return transportFailure{source: source, message: message, category: category, code: code, metadata: metadata}.err()
}

// transportTextCode uses the same text codes as Graph rejections so callers
// can branch on one vocabulary. A gateway timeout is worth retrying.
func transportTextCode(category goerrors.Category, code int) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.ServiceErrorBadInput
	case goerrors.CategoryAuth:
		return core.ServiceErrorUnauthorized
	case goerrors.CategoryAuthz:
		return core.ServiceErrorForbidden
	case goerrors.CategoryRateLimit:
		return core.ServiceErrorRateLimited
	case goerrors.CategoryExternal:
		if code == http.StatusGatewayTimeout || code == http.StatusServiceUnavailable {
			return core.ServiceErrorRetryLater
		}
		return core.ServiceErrorExternalFailure
	default:
		return core.ServiceErrorInternal
	}
}
