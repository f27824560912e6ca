package common

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/goliatone/go-meta-tokens/core"
)

// Endpoint separates building a Graph request from interpreting its
// response. Implementations are pure values with no I/O.
type Endpoint[T any] interface {
	RenderRequest() (core.TransportRequest, error)
	ParseResponse(res core.TransportResponse) (Ret[T], error)
}

// Ret is the three-way parse result: RetOK, RetErrorEnvelope or RetRawBody.
type Ret[T any] interface {
	Status() int
	sealedRet()
}

type RetOK[T any] struct {
	Value T
}

func (RetOK[T]) Status() int { return http.StatusOK }
func (RetOK[T]) sealedRet()  {}

type RetErrorEnvelope[T any] struct {
	StatusCode int
	Envelope   ErrorEnvelope
}

func (r RetErrorEnvelope[T]) Status() int { return r.StatusCode }
func (RetErrorEnvelope[T]) sealedRet()    {}

// RetRawBody keeps a failure body that was not a Graph error envelope,
// byte for byte.
type RetRawBody[T any] struct {
	StatusCode int
	Body       []byte
}

func (r RetRawBody[T]) Status() int { return r.StatusCode }
func (RetRawBody[T]) sealedRet()    {}

// ParseResponse applies the uniform Graph parse policy. A 200 body must
// decode into T and pass its Validate method when present; anything else
// is a ResponseParseError. Every other status yields an envelope when the
// body holds one, and the raw bytes otherwise.
func ParseResponse[T any](res core.TransportResponse) (Ret[T], error) {
	if res.StatusCode == http.StatusOK {
		var value T
		if err := json.Unmarshal(res.Body, &value); err != nil {
			return nil, core.ResponseParseError(err, fmt.Sprintf("common: decode %T success body", value), map[string]any{
				"status_code": res.StatusCode,
			})
		}
		if validator, ok := any(&value).(interface{ Validate() error }); ok {
			if err := validator.Validate(); err != nil {
				return nil, core.ResponseParseError(err, fmt.Sprintf("common: invalid %T success body", value), map[string]any{
					"status_code": res.StatusCode,
				})
			}
		}
		return RetOK[T]{Value: value}, nil
	}

	var envelope ErrorEnvelope
	if err := json.Unmarshal(res.Body, &envelope); err == nil {
		return RetErrorEnvelope[T]{StatusCode: res.StatusCode, Envelope: envelope}, nil
	}
	return RetRawBody[T]{StatusCode: res.StatusCode, Body: append([]byte(nil), res.Body...)}, nil
}

// Respond renders the endpoint, executes it and parses the response.
// Transport errors are returned untouched.
func Respond[T any](ctx context.Context, adapter core.TransportAdapter, ep Endpoint[T]) (Ret[T], error) {
	if adapter == nil {
		return nil, core.RequestBuildError("common: transport adapter is required", nil)
	}
	req, err := ep.RenderRequest()
	if err != nil {
		return nil, err
	}
	res, err := adapter.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return ep.ParseResponse(res)
}
