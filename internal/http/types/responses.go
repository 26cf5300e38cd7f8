// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/validation"
)

// RetryAfterSeconds is advertised to clients on transient failures
const RetryAfterSeconds = 5

// Response is the envelope of every JSON payload
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
}

// ErrorResponse is the standard JSON error body
type ErrorResponse struct {
	Status  int                     `json:"status"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// ErrorMapping ties a sentinel error to an HTTP status
type ErrorMapping struct {
	Err    error
	Status int
}

// CommonErrors covers the storage and authorization sentinels every API shares
var CommonErrors = []ErrorMapping{
	{Err: storage.ErrNotFound, Status: http.StatusNotFound},
	{Err: storage.ErrDuplicateKey, Status: http.StatusConflict},
	{Err: storage.ErrForeignKeyViolation, Status: http.StatusUnprocessableEntity},
	{Err: storage.ErrUnavailable, Status: http.StatusServiceUnavailable},
	{Err: authorization.ErrForbidden, Status: http.StatusForbidden},
}

// Write encodes a successful response
func Write(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(Response{Data: data, Message: message, Status: status})
}

// WriteError writes the error body for status
func WriteError(w http.ResponseWriter, status int, message string) {
	writeErrorResponse(w, ErrorResponse{Status: status, Message: message})
}

func writeErrorResponse(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")

	if resp.Status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
	}

	w.WriteHeader(resp.Status)

	_ = json.NewEncoder(w).Encode(resp)
}

// StatusFor resolves the HTTP status of err, validation errors always map to 422.
// Unmatched errors are 500.
func StatusFor(err error, mappings ...ErrorMapping) int {
	if _, ok := validation.AsError(err); ok {
		return http.StatusUnprocessableEntity
	}

	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			return m.Status
		}
	}

	return http.StatusInternalServerError
}

// WriteServiceError maps err and writes it, internal details are hidden on 500
func WriteServiceError(w http.ResponseWriter, err error, mappings ...ErrorMapping) int {
	status := StatusFor(err, mappings...)

	resp := ErrorResponse{Status: status, Message: err.Error()}

	if vErr, ok := validation.AsError(err); ok {
		resp.Message = "validation failed"
		resp.Errors = vErr.Fields
	}

	switch status {
	case http.StatusInternalServerError:
		resp.Message = "internal server error"
	case http.StatusServiceUnavailable:
		resp.Message = "service temporarily unavailable, retry later"
	}

	writeErrorResponse(w, resp)

	return status
}
