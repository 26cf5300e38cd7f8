// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/db"
	"github.com/canonical/sales-leaderboard/internal/live"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/pkg/authentication"
	"github.com/canonical/sales-leaderboard/pkg/campaigns"
	"github.com/canonical/sales-leaderboard/pkg/companies"
	"github.com/canonical/sales-leaderboard/pkg/invitations"
	"github.com/canonical/sales-leaderboard/pkg/leaderboard"
	livews "github.com/canonical/sales-leaderboard/pkg/live"
	"github.com/canonical/sales-leaderboard/pkg/metrics"
	"github.com/canonical/sales-leaderboard/pkg/sales"
	"github.com/canonical/sales-leaderboard/pkg/status"
	"github.com/canonical/sales-leaderboard/pkg/webhooks"
)

const APIPrefix = "/api/v0"

type Config struct {
	AllowedOrigins     []string
	InvitationLifetime time.Duration
}

func NewRouter(
	cfg Config,
	s storage.StorageInterface,
	dbClient db.DBClientInterface,
	hub *live.Hub,
	verifier authentication.TokenVerifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.AllowedOrigins),
	)

	router.Use(middlewares...)

	authz := authorization.NewAuthorizer(tracer, monitor, logger)

	// public surface: probes, metrics and the identity provider hook
	api := chi.NewMux()
	metrics.NewAPI(logger).RegisterEndpoints(api)
	status.NewAPI(dbClient, tracer, monitor, logger).RegisterEndpoints(api)
	webhooks.NewAPI(webhooks.NewService(s, tracer, monitor, logger), logger).RegisterEndpoints(api)

	protected := chi.NewMux()
	protected.Use(
		authentication.NewMiddleware(verifier, s, tracer, monitor, logger).Authenticate(),
		db.TransactionMiddleware(dbClient, writeTransactionError, logger),
	)

	companies.NewAPI(companies.NewService(s, authz, tracer, monitor, logger), logger).RegisterEndpoints(protected)
	campaigns.NewAPI(campaigns.NewService(s, authz, tracer, monitor, logger), logger).RegisterEndpoints(protected)
	sales.NewAPI(sales.NewService(s, authz, hub, tracer, monitor, logger), logger).RegisterEndpoints(protected)
	leaderboard.NewAPI(leaderboard.NewService(s, authz, tracer, monitor, logger), logger).RegisterEndpoints(protected)
	invitations.NewAPI(invitations.NewService(s, authz, cfg.InvitationLifetime, tracer, monitor, logger), logger).RegisterEndpoints(protected)
	livews.NewAPI(hub, cfg.AllowedOrigins, tracer, monitor, logger).RegisterEndpoints(protected)

	api.Mount("/", protected)
	router.Mount(APIPrefix, api)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
