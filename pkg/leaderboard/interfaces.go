// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package leaderboard

import (
	"context"

	"github.com/canonical/sales-leaderboard/internal/types"
)

type ServiceInterface interface {
	GetLeaderboard(ctx context.Context, actor *types.User, campaignID string) (*Leaderboard, error)
}

type StorageInterface interface {
	GetCampaignByID(ctx context.Context, id string) (*types.Campaign, error)
	GetLeaderboard(ctx context.Context, companyID, campaignID string) ([]*types.LeaderboardEntry, error)
}

type AuthorizerInterface interface {
	Check(ctx context.Context, actor *types.User, permission, companyID string) error
}
