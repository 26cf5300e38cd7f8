// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/db"
	"github.com/canonical/sales-leaderboard/internal/live"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/storage/sqlitetest"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/internal/validation"
)

type lifecycle struct {
	client   *db.DBClient
	store    *storage.Storage
	hub      *live.Hub
	svc      *Service
	admin    *types.User
	alice    *types.User
	bob      *types.User
	campaign *types.Campaign
}

func setupLifecycle(t *testing.T) *lifecycle {
	t.Helper()

	ctx := context.Background()
	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	l := &lifecycle{client: sqlitetest.New(t)}
	l.store = storage.NewStorage(l.client, tracer, monitor, logger)
	l.hub = live.NewHub(8, tracer, monitor, logger)
	t.Cleanup(l.hub.Close)

	l.svc = NewService(l.store, authorization.NewAuthorizer(tracer, monitor, logger), l.hub, tracer, monitor, logger)

	company, err := l.store.CreateCompany(ctx, &types.Company{Name: "Acme"})
	require.NoError(t, err)

	member := func(id, first string, role types.Role) *types.User {
		u, err := l.store.UpsertUser(ctx, &types.User{ID: id, FirstName: first})
		require.NoError(t, err)

		u.CompanyID = company.ID
		u.Role = role
		require.NoError(t, l.store.UpdateUser(ctx, u, []string{"company_id", "role"}))

		return u
	}

	l.admin = member("admin", "Ada", types.RoleAdmin)
	l.alice = member("alice", "Alice", types.RoleSeller)
	l.bob = member("bob", "Bob", types.RoleSeller)

	l.campaign, err = l.store.CreateCampaign(ctx, &types.Campaign{
		CompanyID: company.ID,
		Name:      "C1",
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   time.Now().Add(time.Hour),
		IsActive:  true,
	})
	require.NoError(t, err)

	for _, u := range []*types.User{l.alice, l.bob} {
		_, err := l.store.AddParticipant(ctx, l.campaign.ID, u.ID)
		require.NoError(t, err)
	}

	return l
}

// record runs RecordSale inside a request transaction, the way the HTTP stack does
func (l *lifecycle) record(actor *types.User, sellerID, amount string) (*types.Sale, error) {
	var sale *types.Sale

	err := l.client.WithTx(context.Background(), func(ctx context.Context) error {
		var err error
		sale, err = l.svc.RecordSale(ctx, actor, &RecordSaleRequest{
			CampaignID:         l.campaign.ID,
			SellerID:           sellerID,
			Amount:             types.DecimalString(amount),
			CustomerName:       "X",
			ProductDescription: "Widget",
		})
		return err
	})

	return sale, err
}

func (l *lifecycle) board(t *testing.T) []*types.LeaderboardEntry {
	t.Helper()

	entries, err := l.store.GetLeaderboard(context.Background(), l.admin.CompanyID, l.campaign.ID)
	require.NoError(t, err)

	return entries
}

func nextEvent(t *testing.T, sub *live.Subscription) *live.Event {
	t.Helper()

	select {
	case e := <-sub.Events():
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for live event")
		return nil
	}
}

func assertQuiet(t *testing.T, sub *live.Subscription) {
	t.Helper()

	select {
	case e := <-sub.Events():
		t.Fatalf("unexpected live event %+v", e)
	default:
	}
}

func TestSaleLifecycle(t *testing.T) {
	l := setupLifecycle(t)

	sub, err := l.hub.Subscribe(context.Background(), l.admin.CompanyID, "")
	require.NoError(t, err)
	defer sub.Close()

	assert.Empty(t, l.board(t))

	first, err := l.record(l.admin, l.alice.ID, "100.00")
	require.NoError(t, err)

	e := nextEvent(t, sub)
	assert.Equal(t, "Alice", e.Data.SellerName)
	assert.Equal(t, "100.00", e.Data.Amount)

	entries := l.board(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].SellerID)

	_, err = l.record(l.admin, l.bob.ID, "150.00")
	require.NoError(t, err)
	nextEvent(t, sub)

	entries = l.board(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "bob", entries[0].SellerID)

	_, err = l.record(l.alice, "", "100")
	require.NoError(t, err)
	nextEvent(t, sub)

	entries = l.board(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].SellerID)
	assert.Equal(t, "200.00", entries[0].TotalAmount.String())
	assert.Equal(t, int64(2), entries[0].SalesCount)

	require.NoError(t, l.svc.DeleteSale(context.Background(), l.admin, first.ID))

	entries = l.board(t)
	assert.Equal(t, "bob", entries[0].SellerID)
	assert.Equal(t, "100.00", entries[1].TotalAmount.String())
	assert.Equal(t, int64(1), entries[1].SalesCount)

	_, err = l.record(l.bob, l.bob.ID, "50.00")
	require.NoError(t, err)

	e = nextEvent(t, sub)
	assert.Equal(t, "Bob", e.Data.SellerName)
	assert.Equal(t, "50.00", e.Data.Amount)
	assertQuiet(t, sub)

	err = l.svc.DeleteSale(context.Background(), l.admin, first.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestInvalidSaleLeavesNoTrace(t *testing.T) {
	l := setupLifecycle(t)

	sub, err := l.hub.Subscribe(context.Background(), l.admin.CompanyID, "")
	require.NoError(t, err)
	defer sub.Close()

	for _, amount := range []string{"", "abc", "0", "-3"} {
		_, err := l.record(l.admin, l.alice.ID, amount)

		_, ok := validation.AsError(err)
		assert.True(t, ok, "amount %q must be a validation error, got %v", amount, err)
	}

	assert.Empty(t, l.board(t))
	assertQuiet(t, sub)
}

func TestRolledBackSaleIsNotAnnounced(t *testing.T) {
	l := setupLifecycle(t)

	sub, err := l.hub.Subscribe(context.Background(), l.admin.CompanyID, "")
	require.NoError(t, err)
	defer sub.Close()

	errLater := errors.New("later step failed")

	err = l.client.WithTx(context.Background(), func(ctx context.Context) error {
		if _, err := l.svc.RecordSale(ctx, l.admin, &RecordSaleRequest{
			CampaignID:         l.campaign.ID,
			SellerID:           l.alice.ID,
			Amount:             "10",
			CustomerName:       "X",
			ProductDescription: "Widget",
		}); err != nil {
			return err
		}

		return errLater
	})

	require.ErrorIs(t, err, errLater)
	assert.Empty(t, l.board(t))
	assertQuiet(t, sub)
}

func TestSellerCannotRecordForOthers(t *testing.T) {
	l := setupLifecycle(t)

	_, err := l.record(l.alice, l.bob.ID, "10")

	assert.ErrorIs(t, err, authorization.ErrForbidden)
	assert.Empty(t, l.board(t))
}
