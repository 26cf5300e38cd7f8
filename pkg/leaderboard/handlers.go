// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package leaderboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/sales-leaderboard/internal/http/types"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/pkg/authentication"
)

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/campaigns/{id}/leaderboard", a.getLeaderboard)
}

func (a *API) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := a.service.GetLeaderboard(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		if status := types.WriteServiceError(w, err, types.CommonErrors...); status >= http.StatusInternalServerError {
			a.logger.Errorf("failed to compute leaderboard: %v", err)
		}
		return
	}

	types.Write(w, http.StatusOK, "leaderboard", board)
}
