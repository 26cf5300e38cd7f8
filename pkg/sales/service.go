// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/db"
	"github.com/canonical/sales-leaderboard/internal/live"
	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/internal/validation"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	store     StorageInterface
	authz     AuthorizerInterface
	publisher PublisherInterface
	validator *validation.Validator

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RecordSale validates and stores a sale, then announces it to the live
// viewers of the campaign's company once the surrounding transaction commits.
func (s *Service) RecordSale(ctx context.Context, actor *types.User, req *RecordSaleRequest) (*types.Sale, error) {
	ctx, span := s.tracer.Start(ctx, "sales.Service.RecordSale")
	defer span.End()

	if req.SellerID == "" && actor != nil {
		req.SellerID = actor.ID
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	campaign, err := s.store.GetCampaignByID(ctx, req.CampaignID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: campaign %s", storage.ErrNotFound, req.CampaignID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	if err := s.authz.CanRecordSale(ctx, actor, campaign, req.SellerID); err != nil {
		return nil, err
	}

	seller, err := s.eligibleSeller(ctx, campaign, req.SellerID)
	if err != nil {
		return nil, err
	}

	amount, err := req.Amount.Amount()
	if err != nil {
		return nil, validation.NewError("amount", "must be a positive amount with at most 2 decimals")
	}

	sale := &types.Sale{
		CampaignID:         campaign.ID,
		SellerID:           seller.ID,
		Amount:             amount,
		CustomerName:       req.CustomerName,
		ProductDescription: req.ProductDescription,
		Notes:              req.Notes,
		CreatedBy:          actor.ID,
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	}

	created, err := s.store.CreateSale(ctx, sale)
	if err != nil {
		return nil, err
	}

	created.SellerName = seller.DisplayName()

	event := live.NewSaleEvent(created, created.SellerName)
	companyID := campaign.CompanyID
	pubCtx := context.WithoutCancel(ctx)

	db.AfterCommit(ctx, func() {
		n := s.publisher.Publish(pubCtx, companyID, event)
		s.logger.Debugf("sale %s announced to %d live viewers", event.Data.SaleID, n)
	})

	return created, nil
}

// eligibleSeller enforces that the seller is a member of the campaign's company
// and one of its participants. A seller of another company is reported as not found.
func (s *Service) eligibleSeller(ctx context.Context, campaign *types.Campaign, sellerID string) (*types.User, error) {
	seller, err := s.store.GetUserByID(ctx, sellerID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: seller %s", storage.ErrNotFound, sellerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load seller: %w", err)
	}

	if !seller.BelongsTo(campaign.CompanyID) {
		return nil, fmt.Errorf("%w: seller %s", storage.ErrNotFound, sellerID)
	}

	ok, err := s.store.IsParticipant(ctx, campaign.ID, seller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check participation: %w", err)
	}

	if !ok {
		return nil, validation.NewError("seller_id", "is not a participant of the campaign")
	}

	return seller, nil
}

// DeleteSale removes a sale. A sale of another company is reported as not found.
func (s *Service) DeleteSale(ctx context.Context, actor *types.User, saleID string) error {
	ctx, span := s.tracer.Start(ctx, "sales.Service.DeleteSale")
	defer span.End()

	sale, err := s.store.GetSaleByID(ctx, saleID)
	if err != nil {
		return err
	}

	campaign, err := s.store.GetCampaignByID(ctx, sale.CampaignID)
	if err != nil {
		return err
	}

	if !actor.BelongsTo(campaign.CompanyID) {
		return fmt.Errorf("%w: sale %s", storage.ErrNotFound, saleID)
	}

	if err := s.authz.CanDeleteSale(ctx, actor, campaign, sale); err != nil {
		return err
	}

	if err := s.store.DeleteSale(ctx, saleID); err != nil {
		return err
	}

	s.logger.Security().AdminAction(actor.ID, "delete_sale", authorization.SaleResource(saleID))

	return nil
}

func (s *Service) ListSales(ctx context.Context, actor *types.User, campaignID string, offset, limit uint64) ([]*types.Sale, error) {
	ctx, span := s.tracer.Start(ctx, "sales.Service.ListSales")
	defer span.End()

	campaign, err := s.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Check(ctx, actor, authorization.CAN_VIEW_PERMISSION, campaign.CompanyID); err != nil {
		return nil, err
	}

	return s.store.ListSalesByCampaignID(ctx, campaignID, offset, limit)
}

func NewService(
	store StorageInterface,
	authz AuthorizerInterface,
	publisher PublisherInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.store = store
	s.authz = authz
	s.publisher = publisher
	s.validator = validation.NewValidator()

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
