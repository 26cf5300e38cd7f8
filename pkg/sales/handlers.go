// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sales

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/sales-leaderboard/internal/db"
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
	mux.Post("/sales", a.recordSale)
	mux.Delete("/sales/{id}", a.deleteSale)
	mux.Get("/campaigns/{id}/sales", a.listSales)
}

func (a *API) recordSale(w http.ResponseWriter, r *http.Request) {
	var req RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.logger.Debugf("failed to decode sale: %v", err)
		types.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sale, err := a.service.RecordSale(r.Context(), authentication.GetActor(r.Context()), &req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusCreated, "sale recorded", sale)
}

func (a *API) deleteSale(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteSale(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listSales(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		types.WriteError(w, http.StatusBadRequest, "page must be an integer")
		return
	}

	size, err := queryInt(r, "size")
	if err != nil {
		types.WriteError(w, http.StatusBadRequest, "size must be an integer")
		return
	}

	limit := db.PageSize(size)

	sales, err := a.service.ListSales(r.Context(), authentication.GetActor(r.Context()), chi.URLParam(r, "id"), db.Offset(page, limit), limit)
	if err != nil {
		a.writeError(w, err)
		return
	}

	types.Write(w, http.StatusOK, "sales", sales)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	if status := types.WriteServiceError(w, err, types.CommonErrors...); status >= http.StatusInternalServerError {
		a.logger.Errorf("sales request failed: %v", err)
	}
}

func queryInt(r *http.Request, key string) (int64, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}

	return strconv.ParseInt(v, 10, 64)
}
