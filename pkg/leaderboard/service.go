// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	store StorageInterface
	authz AuthorizerInterface
	now   func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// GetLeaderboard ranks the sellers of a campaign of the caller's company.
// The aggregate is computed from the sales table on every call.
func (s *Service) GetLeaderboard(ctx context.Context, actor *types.User, campaignID string) (*Leaderboard, error) {
	ctx, span := s.tracer.Start(ctx, "leaderboard.Service.GetLeaderboard")
	defer span.End()

	companyID := actor.CompanyScope()

	if err := s.authz.Check(ctx, actor, authorization.CAN_VIEW_PERMISSION, companyID); err != nil {
		return nil, err
	}

	board := &Leaderboard{
		CampaignID: campaignID,
		Entries:    []*types.LeaderboardEntry{},
	}

	campaign, err := s.store.GetCampaignByID(ctx, campaignID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return board, nil
	case err != nil:
		return nil, err
	case campaign.CompanyID != companyID:
		return board, nil
	}

	entries, err := s.store.GetLeaderboard(ctx, companyID, campaignID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.TotalAmount.Decimal)
	}

	board.Campaign = campaign
	board.Running = campaign.Running(s.now())
	board.TotalAmount = types.NewAmount(total)

	if len(entries) > 0 {
		board.Entries = entries
	}

	return board, nil
}

func NewService(store StorageInterface, authz AuthorizerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.store = store
	s.authz = authz
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
