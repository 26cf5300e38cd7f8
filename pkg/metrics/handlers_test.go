// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/sales-leaderboard/internal/logging"
	monitor "github.com/canonical/sales-leaderboard/internal/monitoring/prometheus"
)

func TestMetricsExposition(t *testing.T) {
	logger := logging.NewNoopLogger()
	registry := prometheus.NewRegistry()

	m := monitor.NewMonitorWithRegisterer("sales-leaderboard", registry, logger)
	require.NoError(t, m.SetLiveSubscribers(nil, 3))

	mux := chi.NewMux()
	NewAPIWithGatherer(registry, logger).RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	res := w.Result()
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `live_subscribers{service="sales-leaderboard"} 3`)
}
