// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

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
	mux.Post("/companies", a.createCompany)
	mux.Get("/companies/{id}", a.getCompany)
	mux.Put("/companies/{id}", a.updateCompany)
	mux.Get("/me", a.me)
	mux.Get("/sellers", a.listSellers)
	mux.Patch("/users/{id}", a.updateUser)
}

func (a *API) createCompany(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if !a.decode(w, r, &req) {
		return
	}

	subject, _ := authentication.GetUserID(r.Context())

	c, err := a.service.CreateCompany(r.Context(), subject, authentication.GetActor(r.Context()), &req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusCreated, "company created", c)
}

func (a *API) getCompany(w http.ResponseWriter, r *http.Request) {
	c, err := a.service.GetCompany(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "company", c)
}

func (a *API) updateCompany(w http.ResponseWriter, r *http.Request) {
	var req UpdateCompanyRequest
	if !a.decode(w, r, &req) {
		return
	}

	c, err := a.service.UpdateCompany(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "company updated", c)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	u, err := a.service.Me(r.Context(), authentication.GetActor(r.Context()))
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "current user", u)
}

func (a *API) listSellers(w http.ResponseWriter, r *http.Request) {
	users, err := a.service.ListSellers(r.Context(), authentication.GetActor(r.Context()))
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "sellers", users)
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !a.decode(w, r, &req) {
		return
	}

	u, err := a.service.UpdateUser(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "user updated", u)
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.logger.Debugf("failed to decode request: %v", err)
		types.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	return true
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	if status := types.WriteServiceError(w, err, types.CommonErrors...); status >= http.StatusInternalServerError {
		a.logger.Errorf("companies request failed: %v", err)
	}
}
