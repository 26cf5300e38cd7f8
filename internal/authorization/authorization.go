// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"

	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/internal/types"
)

var ErrForbidden = errors.New("forbidden")

var _ AuthorizerInterface = (*Authorizer)(nil)

// Authorizer enforces the company scoped role model: members of a company can
// view it, only its admins can change it
type Authorizer struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Check returns ErrForbidden unless the actor holds the permission on the company
func (a *Authorizer) Check(ctx context.Context, actor *types.User, permission string, companyID string) error {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.Check")
	defer span.End()

	allowed := false

	switch permission {
	case CAN_VIEW_PERMISSION:
		allowed = actor.BelongsTo(companyID)
	case CAN_EDIT_PERMISSION, CAN_CREATE_PERMISSION, CAN_DELETE_PERMISSION:
		allowed = actor.BelongsTo(companyID) && actor.IsAdmin()
	}

	if !allowed {
		return a.deny(actor, CompanyResource(companyID))
	}

	return nil
}

// CanRecordSale lets admins record for anyone, sellers only for themselves
func (a *Authorizer) CanRecordSale(ctx context.Context, actor *types.User, campaign *types.Campaign, sellerID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CanRecordSale")
	defer span.End()

	if err := a.Check(ctx, actor, CAN_VIEW_PERMISSION, campaign.CompanyID); err != nil {
		return err
	}

	if actor.IsAdmin() || actor.ID == sellerID {
		return nil
	}

	return a.deny(actor, CampaignResource(campaign.ID))
}

// CanDeleteSale allows the company admins and whoever recorded the sale
func (a *Authorizer) CanDeleteSale(ctx context.Context, actor *types.User, campaign *types.Campaign, sale *types.Sale) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CanDeleteSale")
	defer span.End()

	if err := a.Check(ctx, actor, CAN_VIEW_PERMISSION, campaign.CompanyID); err != nil {
		return err
	}

	if actor.IsAdmin() || actor.ID == sale.CreatedBy {
		return nil
	}

	return a.deny(actor, SaleResource(sale.ID))
}

func (a *Authorizer) deny(actor *types.User, resource string) error {
	userID := "anonymous"
	if actor != nil {
		userID = actor.ID
	}

	a.logger.Security().AuthzFailure(userID, resource)

	return ErrForbidden
}

func NewAuthorizer(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
