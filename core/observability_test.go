package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newObservedService(t *testing.T) (*Service, *captureMetricsRecorder, *captureLogger) {
	t.Helper()
	metrics := &captureMetricsRecorder{}
	logger := newCaptureLogger()
	svc, err := NewService(DefaultConfig(),
		WithMetricsRecorder(metrics),
		WithLoggerProvider(stubLoggerProvider{logger: logger}),
		WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, metrics, logger
}

func TestServiceObservability_Success(t *testing.T) {
	svc, metrics, logger := newObservedService(t)

	svc.ObserveOperation(context.Background(), time.Now().Add(-5*time.Millisecond), "Gen App Access Token", nil, map[string]any{
		"app_id":       uint64(123),
		"access_token": "EAAB-secret",
		"status_code":  200,
	})

	if !hasCounter(metrics.counters, "metatokens.gen_app_access_token.total", "success") {
		t.Fatalf("expected metatokens.gen_app_access_token.total success counter, got %#v", metrics.counters)
	}
	if !hasHistogram(metrics.histograms, "metatokens.gen_app_access_token.duration_ms", "success") {
		t.Fatalf("expected duration histogram, got %#v", metrics.histograms)
	}
	records := logger.snapshot()
	if !hasLog(records, "info", "gen_app_access_token succeeded", "gen_app_access_token") {
		t.Fatalf("expected success log, got %#v", records)
	}
	if records[0].fields["access_token"] != RedactedValue {
		t.Fatalf("expected access_token to be redacted in logs, got %#v", records[0].fields["access_token"])
	}
	if records[0].fields["app_id"] != uint64(123) {
		t.Fatalf("expected app_id in logs, got %#v", records[0].fields["app_id"])
	}
}

func TestServiceObservability_Failure(t *testing.T) {
	svc, metrics, logger := newObservedService(t)

	svc.ObserveOperation(context.Background(), time.Now(), "debug_token", errors.New("connection refused"), nil)

	if !hasCounter(metrics.counters, "metatokens.debug_token.total", "failure") {
		t.Fatalf("expected failure counter, got %#v", metrics.counters)
	}
	records := logger.snapshot()
	if !hasLog(records, "error", "debug_token failed", "debug_token") {
		t.Fatalf("expected failure log, got %#v", records)
	}
	if records[0].fields["error"] != "connection refused" {
		t.Fatalf("expected error field, got %#v", records[0].fields["error"])
	}
}

func TestServiceObservability_BusinessRejection(t *testing.T) {
	svc, metrics, logger := newObservedService(t)

	svc.ObserveOperation(context.Background(), time.Now(), "debug_token", nil, map[string]any{
		"outcome":          "rejected",
		"status_code":      400,
		"known_error_case": "access_token_expired_or_revoked_or_invalid",
	})

	if !hasCounter(metrics.counters, "metatokens.debug_token.total", "rejected") {
		t.Fatalf("expected rejected counter, got %#v", metrics.counters)
	}
	counter := metrics.counters[0]
	if counter.tags["status_code"] != "400" {
		t.Fatalf("expected status_code tag, got %#v", counter.tags)
	}
	if counter.tags["known_error_case"] != "access_token_expired_or_revoked_or_invalid" {
		t.Fatalf("expected known_error_case tag, got %#v", counter.tags)
	}
	records := logger.snapshot()
	if !hasLog(records, "warn", "debug_token returned rejected", "debug_token") {
		t.Fatalf("expected warn log, got %#v", records)
	}
	if _, ok := records[0].fields["outcome"]; ok {
		t.Fatalf("expected outcome marker to be folded into status")
	}
}

func hasCounter(counters []capturedCounter, name string, status string) bool {
	for _, counter := range counters {
		if counter.name == name && counter.tags["status"] == status {
			return true
		}
	}
	return false
}

func hasHistogram(histograms []capturedHistogram, name string, status string) bool {
	for _, histogram := range histograms {
		if histogram.name == name && histogram.tags["status"] == status {
			return true
		}
	}
	return false
}

func hasLog(records []capturedLog, level string, msg string, operation string) bool {
	for _, record := range records {
		if record.level == level && record.msg == msg && record.fields["operation"] == operation {
			return true
		}
	}
	return false
}
