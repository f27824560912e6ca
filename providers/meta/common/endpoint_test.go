package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-meta-tokens/core"
	"github.com/goliatone/go-meta-tokens/providers/devkit"
)

type sampleBody struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (b sampleBody) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

type sampleEndpoint struct {
	renderErr error
}

func (e sampleEndpoint) RenderRequest() (core.TransportRequest, error) {
	if e.renderErr != nil {
		return core.TransportRequest{}, e.renderErr
	}
	return GraphRequest{Path: "sample", Query: []QueryParam{{Key: "q", Value: "x"}}}.Render()
}

func (sampleEndpoint) ParseResponse(res core.TransportResponse) (Ret[sampleBody], error) {
	return ParseResponse[sampleBody](res)
}

func TestParseResponse_SuccessDecodesAndValidates(t *testing.T) {
	ret, err := ParseResponse[sampleBody](core.TransportResponse{StatusCode: 200, Body: []byte(`{"name":"a","count":2}`)})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ok, isOK := ret.(RetOK[sampleBody])
	if !isOK {
		t.Fatalf("expected RetOK, got %T", ret)
	}
	if ok.Value.Name != "a" || ok.Value.Count != 2 || ret.Status() != http.StatusOK {
		t.Fatalf("unexpected value %#v", ok.Value)
	}
}

func TestParseResponse_SuccessShapeErrorsAreFatal(t *testing.T) {
	for name, body := range map[string]string{
		"type mismatch":  `{"name":"a","count":"two"}`,
		"failed check":   `{"count":2}`,
		"not json":       `<html></html>`,
		"error envelope": `{"error":{"message":"m","code":1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseResponse[sampleBody](core.TransportResponse{StatusCode: 200, Body: []byte(body)})
			if err == nil {
				t.Fatalf("expected parse error")
			}
			var rich *goerrors.Error
			if !goerrors.As(err, &rich) || rich.TextCode != core.ServiceErrorResponseParseFailed {
				t.Fatalf("expected response parse error envelope, got %v", err)
			}
		})
	}
}

func TestParseResponse_NonSuccessClassification(t *testing.T) {
	ret, err := ParseResponse[sampleBody](core.TransportResponse{StatusCode: 400, Body: []byte(devkit.FixtureSessionHasExpired)})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	envelope, ok := ret.(RetErrorEnvelope[sampleBody])
	if !ok {
		t.Fatalf("expected RetErrorEnvelope, got %T", ret)
	}
	if envelope.StatusCode != 400 || envelope.Envelope.Error.Code != 190 {
		t.Fatalf("unexpected envelope %#v", envelope)
	}

	raw := []byte{0x3c, 0x68, 0x31, 0x3e, 0xff, 0xfe}
	ret, err = ParseResponse[sampleBody](core.TransportResponse{StatusCode: 502, Body: raw})
	if err != nil {
		t.Fatalf("parse raw: %v", err)
	}
	rawRet, ok := ret.(RetRawBody[sampleBody])
	if !ok {
		t.Fatalf("expected RetRawBody, got %T", ret)
	}
	if rawRet.StatusCode != 502 || string(rawRet.Body) != string(raw) {
		t.Fatalf("expected raw bytes preserved exactly, got %v", rawRet.Body)
	}

	// An envelope missing the required code stays raw.
	ret, _ = ParseResponse[sampleBody](core.TransportResponse{StatusCode: 500, Body: []byte(`{"error":{"message":"m"}}`)})
	if _, ok := ret.(RetRawBody[sampleBody]); !ok {
		t.Fatalf("expected RetRawBody for incomplete envelope, got %T", ret)
	}

	// 2xx statuses other than 200 are not success.
	ret, _ = ParseResponse[sampleBody](core.TransportResponse{StatusCode: 201, Body: []byte(`{"name":"a"}`)})
	if _, ok := ret.(RetRawBody[sampleBody]); !ok || ret.Status() != 201 {
		t.Fatalf("expected RetRawBody for 201, got %T", ret)
	}
}

func TestRespond(t *testing.T) {
	adapter := devkit.NewFakeTransportAdapter("rest", devkit.JSONResponse(200, `{"name":"ok"}`))
	ret, err := Respond[sampleBody](context.Background(), adapter, sampleEndpoint{})
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if value := ret.(RetOK[sampleBody]).Value; value.Name != "ok" {
		t.Fatalf("unexpected value %#v", value)
	}
	req, _ := adapter.LastRequest()
	if err := devkit.ValidateGraphRequestConformance(req, "sample", "q"); err != nil {
		t.Fatalf("request conformance: %v", err)
	}
}

func TestRespond_PropagatesErrorsUntouched(t *testing.T) {
	transportErr := errors.New("dial tcp: connection refused")
	adapter := devkit.NewFakeTransportAdapter("rest", devkit.ErrorScript(transportErr))
	_, err := Respond[sampleBody](context.Background(), adapter, sampleEndpoint{})
	if err != transportErr {
		t.Fatalf("expected transport error untouched, got %v", err)
	}

	renderErr := core.RequestBuildError("bad", nil)
	_, err = Respond[sampleBody](context.Background(), adapter, sampleEndpoint{renderErr: renderErr})
	if err != renderErr {
		t.Fatalf("expected render error untouched, got %v", err)
	}
	if len(adapter.Requests()) != 1 {
		t.Fatalf("expected render failure not to reach the transport")
	}

	if _, err := Respond[sampleBody](context.Background(), nil, sampleEndpoint{}); err == nil {
		t.Fatalf("expected nil adapter to fail")
	}
}
