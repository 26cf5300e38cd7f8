// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/sales-leaderboard/internal/http/types"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/pkg/authentication"
)

var errorMappings = append([]types.ErrorMapping{
	{Err: ErrInvitationNotFound, Status: http.StatusNotFound},
	{Err: ErrInvitationUsed, Status: http.StatusGone},
	{Err: ErrInvitationExpired, Status: http.StatusGone},
}, types.CommonErrors...)

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
	mux.Post("/invitations", a.createInvitation)
	mux.Get("/invitations", a.listInvitations)
	mux.Get("/invitations/{token}", a.getInvitation)
	mux.Post("/invitations/{token}/accept", a.acceptInvitation)
}

func (a *API) createInvitation(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.logger.Debugf("failed to decode invitation: %v", err)
		types.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inv, err := a.service.CreateInvitation(r.Context(), authentication.GetActor(r.Context()), &req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusCreated, "invitation created", inv)
}

func (a *API) listInvitations(w http.ResponseWriter, r *http.Request) {
	invs, err := a.service.ListInvitations(r.Context(), authentication.GetActor(r.Context()))
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "invitations", invs)
}

func (a *API) getInvitation(w http.ResponseWriter, r *http.Request) {
	view, err := a.service.GetInvitation(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "invitation", view)
}

func (a *API) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	subject, _ := authentication.GetUserID(r.Context())

	u, err := a.service.AcceptInvitation(r.Context(), subject, authentication.GetActor(r.Context()), chi.URLParam(r, "token"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "invitation accepted", u)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	if status := types.WriteServiceError(w, err, errorMappings...); status >= http.StatusInternalServerError {
		a.logger.Errorf("invitations request failed: %v", err)
	}
}
