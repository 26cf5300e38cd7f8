// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sales

import (
	"context"

	"github.com/canonical/sales-leaderboard/internal/live"
	"github.com/canonical/sales-leaderboard/internal/types"
)

type ServiceInterface interface {
	RecordSale(ctx context.Context, actor *types.User, req *RecordSaleRequest) (*types.Sale, error)
	DeleteSale(ctx context.Context, actor *types.User, saleID string) error
	ListSales(ctx context.Context, actor *types.User, campaignID string, offset, limit uint64) ([]*types.Sale, error)
}

// StorageInterface is the subset of internal/storage used to record and remove sales.
type StorageInterface interface {
	GetCampaignByID(ctx context.Context, id string) (*types.Campaign, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	IsParticipant(ctx context.Context, campaignID, userID string) (bool, error)
	CreateSale(ctx context.Context, s *types.Sale) (*types.Sale, error)
	GetSaleByID(ctx context.Context, id string) (*types.Sale, error)
	ListSalesByCampaignID(ctx context.Context, campaignID string, offset, limit uint64) ([]*types.Sale, error)
	DeleteSale(ctx context.Context, id string) error
}

type AuthorizerInterface interface {
	Check(ctx context.Context, actor *types.User, permission, companyID string) error
	CanRecordSale(ctx context.Context, actor *types.User, campaign *types.Campaign, sellerID string) error
	CanDeleteSale(ctx context.Context, actor *types.User, campaign *types.Campaign, sale *types.Sale) error
}

// PublisherInterface fans a sale event out to the live viewers of a company.
type PublisherInterface interface {
	Publish(ctx context.Context, companyID string, e *live.Event) int
}
