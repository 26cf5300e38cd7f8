// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/canonical/sales-leaderboard/internal/logging"
)

// errRequestFailed marks a rollback caused by the handler answering with an error status
var errRequestFailed = errors.New("request failed")

// ErrorWriter answers a request whose transaction could not be committed
type ErrorWriter func(w http.ResponseWriter, err error)

// TransactionMiddleware runs every mutating request in one lazy transaction.
// Status < 400 commits and then runs the AfterCommit hooks, anything else rolls back.
// The handler response is held back until the transaction ends, a failed commit
// replaces it with writeError. Safe methods run without a transaction.
func TransactionMiddleware(db DBClientInterface, writeError ErrorWriter, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			rw := newBufferedResponse()

			err := db.WithTx(r.Context(), func(txCtx context.Context) error {
				next.ServeHTTP(rw, r.WithContext(txCtx))

				if rw.statusCode >= http.StatusBadRequest {
					return fmt.Errorf("%w with status %d", errRequestFailed, rw.statusCode)
				}

				return nil
			})

			if err != nil && !errors.Is(err, errRequestFailed) {
				logger.Errorf("transaction for %s %s failed: %v", r.Method, r.URL.Path, err)
				writeError(w, err)
				return
			}

			rw.flushTo(w)
		})
	}
}

// bufferedResponse records status, headers and body until flushTo
type bufferedResponse struct {
	header     http.Header
	statusCode int
	body       bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	rw := new(bufferedResponse)
	rw.header = make(http.Header)
	rw.statusCode = http.StatusOK

	return rw
}

func (rw *bufferedResponse) Header() http.Header {
	return rw.header
}

func (rw *bufferedResponse) WriteHeader(code int) {
	rw.statusCode = code
}

func (rw *bufferedResponse) Write(b []byte) (int, error) {
	return rw.body.Write(b)
}

func (rw *bufferedResponse) flushTo(w http.ResponseWriter) {
	for k, v := range rw.header {
		w.Header()[k] = v
	}

	w.WriteHeader(rw.statusCode)

	if rw.body.Len() > 0 {
		_, _ = w.Write(rw.body.Bytes())
	}
}
