// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/sales-leaderboard/internal/types"
)

type StorageInterface interface {
	CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error)
	GetCompanyByID(ctx context.Context, id string) (*types.Company, error)
	UpdateCompany(ctx context.Context, c *types.Company, paths []string) error

	UpsertUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	ListUsersByCompanyID(ctx context.Context, companyID string) ([]*types.User, error)
	UpdateUser(ctx context.Context, u *types.User, paths []string) error

	CreateCampaign(ctx context.Context, c *types.Campaign) (*types.Campaign, error)
	GetCampaignByID(ctx context.Context, id string) (*types.Campaign, error)
	ListCampaignsByCompanyID(ctx context.Context, companyID string) ([]*types.Campaign, error)
	ListCampaignsByParticipant(ctx context.Context, userID string) ([]*types.Campaign, error)
	UpdateCampaign(ctx context.Context, c *types.Campaign, paths []string) error

	AddParticipant(ctx context.Context, campaignID, userID string) (*types.Participant, error)
	RemoveParticipant(ctx context.Context, campaignID, userID string) error
	ListParticipants(ctx context.Context, campaignID string) ([]*types.Participant, error)
	IsParticipant(ctx context.Context, campaignID, userID string) (bool, error)

	CreateSale(ctx context.Context, s *types.Sale) (*types.Sale, error)
	GetSaleByID(ctx context.Context, id string) (*types.Sale, error)
	ListSalesByCampaignID(ctx context.Context, campaignID string, offset, limit uint64) ([]*types.Sale, error)
	DeleteSale(ctx context.Context, id string) error

	GetLeaderboard(ctx context.Context, companyID, campaignID string) ([]*types.LeaderboardEntry, error)

	CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error)
	ListInvitationsByCompanyID(ctx context.Context, companyID string) ([]*types.Invitation, error)
	MarkInvitationUsed(ctx context.Context, id string, usedAt time.Time) error
	DeleteExpiredInvitations(ctx context.Context, before time.Time) (int64, error)
}
