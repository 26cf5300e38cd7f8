// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
)

// untraced are probe and scrape endpoints plus the long lived live stream
var untraced = []string{"/metrics", "/status", "/status/deep", "/ws"}

// Middleware opens a server span per request and extracts incoming trace context
type Middleware struct {
	service string

	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (mdw *Middleware) OpenTelemetry(handler http.Handler) http.Handler {
	return otelhttp.NewHandler(
		handler,
		mdw.service,
		otelhttp.WithFilter(traced),
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return operation + " " + r.Method
		}),
	)
}

func traced(r *http.Request) bool {
	for _, suffix := range untraced {
		if strings.HasSuffix(r.URL.Path, suffix) {
			return false
		}
	}

	return true
}

// NewMiddleware returns a Middleware naming spans after the monitored service
func NewMiddleware(monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	mdw := new(Middleware)

	mdw.monitor = monitor
	mdw.service = monitor.GetService()
	mdw.logger = logger

	return mdw
}
