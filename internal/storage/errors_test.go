// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "sql no rows", err: sql.ErrNoRows, expected: ErrNotFound},
		{name: "pgx no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), expected: ErrNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, expected: ErrDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, expected: ErrForeignKeyViolation},
		{name: "connection done", err: sql.ErrConnDone, expected: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, wrapError(tt.err, "operation"), tt.expected)
		})
	}
}

func TestWrapErrorKeepsUnknownErrors(t *testing.T) {
	cause := errors.New("syntax error")
	err := wrapError(cause, "failed to list sales")

	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, wrapError(nil, "noop"))
}
