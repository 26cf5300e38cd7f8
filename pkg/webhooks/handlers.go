// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/sales-leaderboard/internal/http/types"
	"github.com/canonical/sales-leaderboard/internal/logging"
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
	mux.Post("/webhooks/registration", a.registration)
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	var identity RegistrationIdentity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		a.logger.Errorf("failed to decode registration webhook: %v", err)
		types.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.service.HandleRegistration(r.Context(), &identity)
	if err != nil {
		if status := types.WriteServiceError(w, err, types.CommonErrors...); status >= http.StatusInternalServerError {
			a.logger.Errorf("registration webhook failed: %v", err)
		}
		return
	}

	types.Write(w, http.StatusOK, "user registered", user)
}
