// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package campaigns

import (
	"encoding/json"
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
	mux.Get("/campaigns", a.listCampaigns)
	mux.Post("/campaigns", a.createCampaign)
	mux.Get("/campaigns/{id}", a.getCampaign)
	mux.Put("/campaigns/{id}", a.updateCampaign)
	mux.Get("/campaigns/{id}/participants", a.listParticipants)
	mux.Post("/campaigns/{id}/participants", a.addParticipant)
	mux.Delete("/campaigns/{id}/participants/{userID}", a.removeParticipant)
}

func (a *API) listCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.service.ListCampaigns(r.Context(), authentication.GetActor(r.Context()))
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "campaigns", campaigns)
}

func (a *API) createCampaign(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if !a.decode(w, r, &req) {
		return
	}

	c, err := a.service.CreateCampaign(r.Context(), authentication.GetActor(r.Context()), &req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusCreated, "campaign created", c)
}

func (a *API) getCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := a.service.GetCampaign(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "campaign", c)
}

func (a *API) updateCampaign(w http.ResponseWriter, r *http.Request) {
	var req UpdateCampaignRequest
	if !a.decode(w, r, &req) {
		return
	}

	c, err := a.service.UpdateCampaign(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "campaign updated", c)
}

func (a *API) listParticipants(w http.ResponseWriter, r *http.Request) {
	ps, err := a.service.ListParticipants(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "participants", ps)
}

func (a *API) addParticipant(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantRequest
	if !a.decode(w, r, &req) {
		return
	}

	p, err := a.service.AddParticipant(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusCreated, "participant added", p)
}

func (a *API) removeParticipant(w http.ResponseWriter, r *http.Request) {
	err := a.service.RemoveParticipant(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id"), chi.URLParam(r, "userID"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.logger.Debugf("failed to decode campaign request: %v", err)
		types.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	return true
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	if status := types.WriteServiceError(w, err, types.CommonErrors...); status >= http.StatusInternalServerError {
		a.logger.Errorf("campaigns request failed: %v", err)
	}
}
