// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
)

func TestOpenTelemetrySkipsProbesAndStreams(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	logger := logging.NewNoopLogger()
	mdw := NewMiddleware(monitoring.NewNoopMonitor("sales-leaderboard", logger), logger)

	handler := mdw.OpenTelemetry(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, path := range []string{"/api/v0/status", "/api/v0/status/deep", "/api/v0/metrics", "/api/v0/ws", "/api/v0/sales"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, nil))
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected only the sales request to be traced, got %d spans", len(spans))
	}

	if name := spans[0].Name(); name != "sales-leaderboard POST" {
		t.Fatalf("unexpected span name %q", name)
	}
}
