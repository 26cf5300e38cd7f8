// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"time"

	"github.com/canonical/sales-leaderboard/internal/types"
)

type ServiceInterface interface {
	CreateInvitation(ctx context.Context, actor *types.User, req *CreateInvitationRequest) (*types.Invitation, error)
	ListInvitations(ctx context.Context, actor *types.User) ([]*types.Invitation, error)
	GetInvitation(ctx context.Context, token string) (*InvitationView, error)
	AcceptInvitation(ctx context.Context, subject string, actor *types.User, token string) (*types.User, error)
}

// StorageInterface is the subset of internal/storage used by invitations.
type StorageInterface interface {
	CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error)
	ListInvitationsByCompanyID(ctx context.Context, companyID string) ([]*types.Invitation, error)
	MarkInvitationUsed(ctx context.Context, id string, usedAt time.Time) error
	GetCompanyByID(ctx context.Context, id string) (*types.Company, error)
	UpsertUser(ctx context.Context, u *types.User) (*types.User, error)
	UpdateUser(ctx context.Context, u *types.User, paths []string) error
}

type AuthorizerInterface interface {
	Check(ctx context.Context, actor *types.User, permission, companyID string) error
}
