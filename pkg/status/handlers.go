// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/sales-leaderboard/internal/http/types"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/internal/version"
)

const (
	okValue = "ok"

	pingTimeout = 2 * time.Second
)

type Status struct {
	Status    string    `json:"status"`
	BuildInfo BuildInfo `json:"buildInfo"`
}

type BuildInfo struct {
	Version string `json:"version"`
	Name    string `json:"name"`
}

type DeepStatus struct {
	Status
	Database string `json:"database"`
}

type API struct {
	db PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/status", a.alive)
	mux.Get("/status/deep", a.deepCheck)
}

func (a *API) buildInfo() BuildInfo {
	return BuildInfo{Version: version.Version, Name: a.monitor.GetService()}
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	types.Write(w, http.StatusOK, okValue, Status{Status: okValue, BuildInfo: a.buildInfo()})
}

// deepCheck pings the database and records its availability
func (a *API) deepCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.deepCheck")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	s := DeepStatus{Status: Status{Status: okValue, BuildInfo: a.buildInfo()}, Database: okValue}
	code := http.StatusOK
	available := 1.0

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Errorf("database ping failed: %v", err)

		s.Status.Status = "degraded"
		s.Database = "unavailable"
		code = http.StatusServiceUnavailable
		available = 0
	}

	if err := a.monitor.SetDependencyAvailability(map[string]string{"component": "database"}, available); err != nil {
		a.logger.Debugf("failed to set dependency availability: %v", err)
	}

	types.Write(w, code, s.Status.Status, s)
}

func NewAPI(db PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.db = db

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
