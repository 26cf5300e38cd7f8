// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"database/sql"
	"time"

	"github.com/canonical/sales-leaderboard/internal/db"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/tracing"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	now func() time.Time

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c
	s.now = func() time.Time { return time.Now().UTC() }

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

// nullString stores empty strings as NULL, used for unique nullable columns
func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
