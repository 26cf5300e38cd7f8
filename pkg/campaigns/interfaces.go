// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package campaigns

import (
	"context"

	"github.com/canonical/sales-leaderboard/internal/types"
)

type ServiceInterface interface {
	ListCampaigns(ctx context.Context, actor *types.User) ([]*CampaignView, error)
	GetCampaign(ctx context.Context, actor *types.User, id string) (*CampaignView, error)
	CreateCampaign(ctx context.Context, actor *types.User, req *CreateCampaignRequest) (*CampaignView, error)
	UpdateCampaign(ctx context.Context, actor *types.User, id string, req *UpdateCampaignRequest) (*CampaignView, error)
	ListParticipants(ctx context.Context, actor *types.User, campaignID string) ([]*types.Participant, error)
	AddParticipant(ctx context.Context, actor *types.User, campaignID, userID string) (*types.Participant, error)
	RemoveParticipant(ctx context.Context, actor *types.User, campaignID, userID string) error
}

type StorageInterface interface {
	CreateCampaign(ctx context.Context, c *types.Campaign) (*types.Campaign, error)
	GetCampaignByID(ctx context.Context, id string) (*types.Campaign, error)
	ListCampaignsByCompanyID(ctx context.Context, companyID string) ([]*types.Campaign, error)
	ListCampaignsByParticipant(ctx context.Context, userID string) ([]*types.Campaign, error)
	UpdateCampaign(ctx context.Context, c *types.Campaign, paths []string) error
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	AddParticipant(ctx context.Context, campaignID, userID string) (*types.Participant, error)
	RemoveParticipant(ctx context.Context, campaignID, userID string) error
	ListParticipants(ctx context.Context, campaignID string) ([]*types.Participant, error)
	IsParticipant(ctx context.Context, campaignID, userID string) (bool, error)
}

type AuthorizerInterface interface {
	Check(ctx context.Context, actor *types.User, permission, companyID string) error
}
