// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteTransactionError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		retryAfter     bool
	}{
		{name: "connection lost", err: fmt.Errorf("failed to commit transaction: %w", sql.ErrConnDone), expectedStatus: http.StatusServiceUnavailable, retryAfter: true},
		{name: "unknown failure", err: errors.New("failed to commit transaction: disk full"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			writeTransactionError(rr, tt.err)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.retryAfter, rr.Header().Get("Retry-After") != "")
			assert.NotContains(t, rr.Body.String(), "disk full")
		})
	}
}
