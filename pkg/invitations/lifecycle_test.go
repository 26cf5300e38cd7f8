// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/storage/sqlitetest"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/internal/types"
)

func TestInvitationIsSingleUse(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	store := storage.NewStorage(sqlitetest.New(t), tracer, monitor, logger)
	svc := NewService(store, authorization.NewAuthorizer(tracer, monitor, logger), time.Hour, tracer, monitor, logger)

	company, err := store.CreateCompany(ctx, &types.Company{Name: "Acme"})
	require.NoError(t, err)

	admin, err := store.UpsertUser(ctx, &types.User{ID: "admin"})
	require.NoError(t, err)
	admin.CompanyID = company.ID
	admin.Role = types.RoleAdmin
	require.NoError(t, store.UpdateUser(ctx, admin, []string{"company_id", "role"}))

	inv, err := svc.CreateInvitation(ctx, admin, &CreateInvitationRequest{Email: "carol@acme.test", Role: types.RoleSeller})
	require.NoError(t, err)
	require.NotEmpty(t, inv.Token)

	view, err := svc.GetInvitation(ctx, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, "Acme", view.CompanyName)

	carol, err := svc.AcceptInvitation(ctx, "carol", nil, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, company.ID, carol.CompanyID)

	stored, err := store.GetUserByID(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, types.RoleSeller, stored.Role)
	assert.Equal(t, "carol@acme.test", stored.Email)
	assert.True(t, stored.BelongsTo(company.ID))

	_, err = svc.AcceptInvitation(ctx, "dave", nil, inv.Token)
	assert.ErrorIs(t, err, ErrInvitationUsed)

	_, err = svc.GetInvitation(ctx, inv.Token)
	assert.ErrorIs(t, err, ErrInvitationUsed)

	_, err = store.GetUserByID(ctx, "dave")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
