// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/canonical/sales-leaderboard/internal/http/types"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/tracing"
)

// AccessTokenParam carries the token on WebSocket upgrades, browsers cannot
// set headers there
const AccessTokenParam = "access_token"

type Middleware struct {
	verifier TokenVerifierInterface
	store    StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			token, found := m.getBearerToken(r)
			if !found {
				types.WriteError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			userID, err := m.verifier.VerifyToken(ctx, token)
			if err != nil {
				m.logger.Debugf("JWT verification failed: %v", err)
				m.logger.Security().AuthnFailure("invalid token")
				types.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			// Token is valid, inject user ID into context
			ctx = WithUserID(ctx, userID)

			actor, err := m.store.GetUserByID(ctx, userID)
			switch {
			case err == nil:
				ctx = WithActor(ctx, actor)
			case errors.Is(err, storage.ErrNotFound):
				// not registered yet, only onboarding routes will accept it
			default:
				m.logger.Errorf("failed to load user %s: %v", userID, err)
				types.WriteServiceError(w, err, types.CommonErrors...)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) getBearerToken(r *http.Request) (string, bool) {
	bearer := r.Header.Get("Authorization")

	// Only support "Bearer <token>" format (RFC 6750)
	if strings.HasPrefix(bearer, "Bearer ") {
		return strings.TrimPrefix(bearer, "Bearer "), true
	}

	if bearer == "" && websocket.IsWebSocketUpgrade(r) {
		if token := r.URL.Query().Get(AccessTokenParam); token != "" {
			return token, true
		}
	}

	return "", false
}

func NewMiddleware(verifier TokenVerifierInterface, store StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		verifier: verifier,
		store:    store,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
