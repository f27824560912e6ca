package common

import (
	"net/http"
	"strings"
	"unicode/utf8"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-meta-tokens/core"
)

// Outcome is the business result of a workflow: a value on success, or a
// Failure describing the Graph rejection.
type Outcome[T any] struct {
	Value   T
	Failure *Failure
}

func Succeeded[T any](value T) Outcome[T] {
	return Outcome[T]{Value: value}
}

func Failed[T any](failure Failure) Outcome[T] {
	return Outcome[T]{Failure: &failure}
}

func (o Outcome[T]) OK() bool {
	return o.Failure == nil
}

// Failure pairs the HTTP status with the error envelope. Raw failure bodies
// are folded in through NewStatusCodeAndBodyError.
type Failure struct {
	StatusCode int
	Envelope   ErrorEnvelope
}

func (f Failure) GraphError() GraphError {
	return f.Envelope.Error
}

func (f Failure) KnownErrorCase() (KnownErrorCase, bool) {
	return Classify(f.Envelope.Error)
}

// Err converts the failure into a service error for callers that want to
// propagate it as a Go error.
func (f Failure) Err() error {
	return f.serviceError(goerrors.New)
}

// ErrFor is Err with the error built through the service's factory.
func (f Failure) ErrFor(service *core.Service) error {
	return f.serviceError(service.NewError)
}

func (f Failure) serviceError(newError core.ErrorFactory) error {
	graphErr := f.Envelope.Error
	if known, ok := Classify(graphErr); ok {
		err := known.serviceError(newError, graphErr)
		err.Metadata["status_code"] = f.StatusCode
		return err
	}
	metadata := graphErrorMetadata(graphErr)
	metadata["status_code"] = f.StatusCode
	if status, body, ok := graphErr.AsStatusCodeAndBody(); ok {
		metadata["status_code"] = status
		metadata["body"] = body
	}
	code := http.StatusBadGateway
	if f.StatusCode >= 400 && f.StatusCode < 500 {
		code = f.StatusCode
	}
	return newError(graphErr.Message, goerrors.CategoryExternal).
		WithCode(code).
		WithTextCode(core.ServiceErrorExternalFailure).
		WithMetadata(metadata)
}

// FoldRet turns a parsed Ret into an Outcome, mapping the success value and
// fabricating an error for raw failure bodies.
func FoldRet[T any, U any](ret Ret[T], mapOK func(T) U) Outcome[U] {
	switch typed := ret.(type) {
	case RetOK[T]:
		return Succeeded(mapOK(typed.Value))
	case RetErrorEnvelope[T]:
		return Failed[U](Failure{StatusCode: typed.StatusCode, Envelope: typed.Envelope})
	case RetRawBody[T]:
		return Failed[U](RawBodyFailure(typed.StatusCode, typed.Body))
	default:
		return Failed[U](RawBodyFailure(http.StatusInternalServerError, nil))
	}
}

// RawBodyFailure fabricates a Failure from an unstructured response body.
// Each maximal invalid UTF-8 subsequence is replaced with one U+FFFD.
func RawBodyFailure(statusCode int, body []byte) Failure {
	return Failure{
		StatusCode: statusCode,
		Envelope: ErrorEnvelope{
			Error: NewStatusCodeAndBodyError(statusCode, lossyUTF8(body)),
		},
	}
}

func lossyUTF8(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	var out strings.Builder
	out.Grow(len(body) + 8)
	for len(body) > 0 {
		r, size := utf8.DecodeRune(body)
		if r != utf8.RuneError || size > 1 {
			out.Write(body[:size])
			body = body[size:]
			continue
		}
		out.WriteRune(utf8.RuneError)
		body = body[invalidPrefixLen(body):]
	}
	return out.String()
}

// invalidPrefixLen is the length of the maximal prefix of b that could start
// a well-formed sequence. b must begin with an ill-formed sequence.
func invalidPrefixLen(b []byte) int {
	lead := b[0]
	need := 0
	lo, hi := byte(0x80), byte(0xBF)
	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		need = 1
	case lead == 0xE0:
		need, lo = 2, 0xA0
	case lead == 0xED:
		need, hi = 2, 0x9F
	case lead >= 0xE1 && lead <= 0xEF:
		need = 2
	case lead == 0xF0:
		need, lo = 3, 0x90
	case lead == 0xF4:
		need, hi = 3, 0x8F
	case lead >= 0xF1 && lead <= 0xF3:
		need = 3
	default:
		return 1
	}
	n := 1
	for n <= need && n < len(b) && b[n] >= lo && b[n] <= hi {
		n++
		lo, hi = 0x80, 0xBF
	}
	return n
}
