// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/storage/sqlitetest"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/internal/types"
)

type countingPurger struct {
	calls  atomic.Int32
	before atomic.Value
	err    error
}

func (p *countingPurger) DeleteExpiredInvitations(_ context.Context, before time.Time) (int64, error) {
	p.calls.Add(1)
	p.before.Store(before)
	return 0, p.err
}

func newTestScheduler(t *testing.T, store InvitationPurgerInterface) *Scheduler {
	t.Helper()

	logger := logging.NewNoopLogger()

	s, err := NewScheduler(store, time.Hour, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
	require.NoError(t, err)

	return s
}

func TestPurgeCutoff(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	purger := new(countingPurger)

	s := newTestScheduler(t, purger)
	s.now = func() time.Time { return now }

	_, err := s.PurgeExpiredInvitations(context.Background())
	require.NoError(t, err)

	assert.Equal(t, now.Add(-24*time.Hour), purger.before.Load())
}

func TestPurgeError(t *testing.T) {
	purger := &countingPurger{err: errors.New("db down")}

	_, err := newTestScheduler(t, purger).PurgeExpiredInvitations(context.Background())
	assert.ErrorIs(t, err, purger.err)
}

func TestStartRunsImmediately(t *testing.T) {
	purger := new(countingPurger)
	s := newTestScheduler(t, purger)

	require.NoError(t, s.Start())

	require.Eventually(t, func() bool { return purger.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Shutdown())
}

func TestPurgeKeepsRecentAndUsedInvitations(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	store := storage.NewStorage(sqlitetest.New(t), tracer, monitor, logger)

	company, err := store.CreateCompany(ctx, &types.Company{Name: "Acme"})
	require.NoError(t, err)

	_, err = store.UpsertUser(ctx, &types.User{ID: "admin"})
	require.NoError(t, err)

	now := time.Now()
	invite := func(token string, expiresAt time.Time) *types.Invitation {
		i, err := store.CreateInvitation(ctx, &types.Invitation{
			Email:     token + "@acme.test",
			CompanyID: company.ID,
			Role:      types.RoleSeller,
			Token:     token,
			ExpiresAt: expiresAt,
			CreatedBy: "admin",
		})
		require.NoError(t, err)
		return i
	}

	invite("stale", now.Add(-48*time.Hour))
	invite("recently-expired", now.Add(-time.Hour))
	invite("valid", now.Add(time.Hour))
	used := invite("used", now.Add(-48*time.Hour))
	require.NoError(t, store.MarkInvitationUsed(ctx, used.ID, now.Add(-72*time.Hour)))

	n, err := newTestScheduler(t, store).PurgeExpiredInvitations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = store.GetInvitationByToken(ctx, "stale")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	for _, token := range []string{"recently-expired", "valid", "used"} {
		_, err := store.GetInvitationByToken(ctx, token)
		assert.NoError(t, err, token)
	}
}
