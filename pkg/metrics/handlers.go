// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/canonical/sales-leaderboard/internal/logging"
)

type API struct {
	handler http.Handler

	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/metrics", a.prometheusHTTP)
}

func (a *API) prometheusHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// NewAPI exposes the default prometheus registry
func NewAPI(logger logging.LoggerInterface) *API {
	return NewAPIWithGatherer(prometheus.DefaultGatherer, logger)
}

func NewAPIWithGatherer(gatherer prometheus.Gatherer, logger logging.LoggerInterface) *API {
	a := new(API)

	a.handler = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	a.logger = logger

	return a
}
