// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/cors"

	"github.com/canonical/sales-leaderboard/internal/http/types"
	"github.com/canonical/sales-leaderboard/internal/storage"
)

func middlewareCORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(
		cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"Link", "Retry-After"},
			AllowCredentials: false,
			MaxAge:           300,
		},
	)
}

// writeTransactionError answers a request whose commit failed, transient
// failures become 503 so clients retry
func writeTransactionError(w http.ResponseWriter, err error) {
	if storage.IsUnavailable(err) {
		err = fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}

	types.WriteServiceError(w, err, types.CommonErrors...)
}
