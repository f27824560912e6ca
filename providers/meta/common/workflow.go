package common

import (
	"context"
	"time"

	"github.com/goliatone/go-meta-tokens/core"
)

// Run executes one endpoint round trip and folds the result into an Outcome.
// The call is observed through the service: transport and parse errors count
// as failures, Graph rejections as "rejected" with their status and known
// error case.
func Run[T any, U any](
	ctx context.Context,
	service *core.Service,
	adapter core.TransportAdapter,
	operation string,
	ep Endpoint[T],
	fields map[string]any,
	mapOK func(T) U,
) (Outcome[U], error) {
	startedAt := time.Now()
	if fields == nil {
		fields = map[string]any{}
	}
	fields["request_id"] = service.NewRequestID()

	ret, err := Respond(ctx, adapter, ep)
	if err != nil {
		service.ObserveOperation(ctx, startedAt, operation, err, fields)
		return Outcome[U]{}, err
	}
	outcome := FoldRet(ret, mapOK)
	ObserveOutcome(ctx, service, startedAt, operation, outcome.Failure, fields)
	return outcome, nil
}

// ObserveOutcome records a finished workflow. A nil failure is a success.
func ObserveOutcome(ctx context.Context, service *core.Service, startedAt time.Time, operation string, failure *Failure, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	if failure != nil {
		fields["outcome"] = "rejected"
		fields["status_code"] = failure.StatusCode
		fields["graph_code"] = failure.GraphError().Code
		if known, ok := failure.KnownErrorCase(); ok {
			fields["known_error_case"] = known.String()
		}
		if traceID := failure.GraphError().FBTraceID; traceID != "" {
			fields["fbtrace_id"] = traceID
		}
	}
	service.ObserveOperation(ctx, startedAt, operation, nil, fields)
}
