// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package live

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/http/types"
	"github.com/canonical/sales-leaderboard/internal/live"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/pkg/authentication"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	pongWait   = pingPeriod + writeWait

	maxMessageSize = 512
)

type API struct {
	hub      HubInterface
	upgrader websocket.Upgrader

	pingPeriod time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/ws", a.serveWS)
}

// serveWS streams the live events of the caller's company, optionally narrowed
// with ?campaign_id. Clients only receive, anything they send is discarded.
func (a *API) serveWS(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "live.API.serveWS")
	defer span.End()

	actor := authentication.GetActor(ctx)
	if actor == nil || !actor.IsActive || actor.CompanyID == "" {
		userID, _ := authentication.GetUserID(ctx)
		if userID == "" {
			userID = "anonymous"
		}
		a.logger.Security().AuthzFailure(userID, "live")
		types.WriteServiceError(w, authorization.ErrForbidden, types.CommonErrors...)
		return
	}

	sub, err := a.hub.Subscribe(ctx, actor.CompanyID, r.URL.Query().Get("campaign_id"))
	if errors.Is(err, live.ErrHubClosed) {
		types.WriteError(w, http.StatusServiceUnavailable, "live updates are shutting down")
		return
	}

	if err != nil {
		a.logger.Errorf("failed to subscribe to live updates: %v", err)
		types.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer sub.Close()

	// Upgrade already replied with an HTTP error on failure
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Debugf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	a.logger.Debugf("live viewer %s connected to company %s", actor.ID, actor.CompanyID)

	done := make(chan struct{})
	go a.discardReads(conn, done)

	a.writeEvents(conn, sub, done)

	a.logger.Debugf("live viewer %s disconnected", actor.ID)
}

// discardReads keeps the read side moving so pongs and close frames are processed
func (a *API) discardReads(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (a *API) writeEvents(conn *websocket.Conn, sub *live.Subscription, done <-chan struct{}) {
	ticker := time.NewTicker(a.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case e, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}

			if err := conn.WriteJSON(e); err != nil {
				a.logger.Debugf("failed to write live event: %v", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// NewAPI serves live events, allowedOrigins follows the CORS configuration and
// "*" accepts any origin
func NewAPI(hub HubInterface, allowedOrigins []string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.hub = hub
	a.pingPeriod = pingPeriod
	a.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin(allowedOrigins),
	}

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}

func checkOrigin(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}

		return false
	}
}
