// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package campaigns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/sales-leaderboard/internal/authorization"
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
	validator *validation.Validator
	now       func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) view(c *types.Campaign) *CampaignView {
	return &CampaignView{Campaign: c, Running: c.Running(s.now())}
}

func (s *Service) views(cs []*types.Campaign) []*CampaignView {
	out := make([]*CampaignView, 0, len(cs))
	for _, c := range cs {
		out = append(out, s.view(c))
	}
	return out
}

// ListCampaigns returns every campaign of the company to admins and only the
// campaigns they take part in to sellers.
func (s *Service) ListCampaigns(ctx context.Context, actor *types.User) ([]*CampaignView, error) {
	ctx, span := s.tracer.Start(ctx, "campaigns.Service.ListCampaigns")
	defer span.End()

	if err := s.authz.Check(ctx, actor, authorization.CAN_VIEW_PERMISSION, actor.CompanyScope()); err != nil {
		return nil, err
	}

	var (
		cs  []*types.Campaign
		err error
	)

	if actor.IsAdmin() {
		cs, err = s.store.ListCampaignsByCompanyID(ctx, actor.CompanyID)
	} else {
		cs, err = s.store.ListCampaignsByParticipant(ctx, actor.ID)
	}

	if err != nil {
		return nil, err
	}

	return s.views(cs), nil
}

// campaign loads a campaign of the actor's company, others are reported as not found
func (s *Service) campaign(ctx context.Context, actor *types.User, id string) (*types.Campaign, error) {
	c, err := s.store.GetCampaignByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.BelongsTo(c.CompanyID) {
		return nil, fmt.Errorf("%w: campaign %s", storage.ErrNotFound, id)
	}

	return c, nil
}

func (s *Service) GetCampaign(ctx context.Context, actor *types.User, id string) (*CampaignView, error) {
	ctx, span := s.tracer.Start(ctx, "campaigns.Service.GetCampaign")
	defer span.End()

	c, err := s.campaign(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	return s.view(c), nil
}

func (s *Service) CreateCampaign(ctx context.Context, actor *types.User, req *CreateCampaignRequest) (*CampaignView, error) {
	ctx, span := s.tracer.Start(ctx, "campaigns.Service.CreateCampaign")
	defer span.End()

	if err := s.authz.Check(ctx, actor, authorization.CAN_CREATE_PERMISSION, actor.CompanyScope()); err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	c := &types.Campaign{
		CompanyID:        actor.CompanyID,
		Name:             req.Name,
		Description:      req.Description,
		PrizeEmoji:       req.PrizeEmoji,
		PrizeImageURL:    req.PrizeImageURL,
		PrizeDescription: req.PrizeDescription,
		StartDate:        *req.StartDate,
		EndDate:          *req.EndDate,
		IsActive:         true,
	}

	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if c.PrizeEmoji == "" {
		c.PrizeEmoji = types.DefaultPrizeEmoji
	}

	vErr := new(validation.Error)
	c.TargetAmount = target(req.TargetAmount, vErr)
	checkPeriod(c, vErr)

	if err := vErr.OrNil(); err != nil {
		return nil, err
	}

	created, err := s.store.CreateCampaign(ctx, c)
	if err != nil {
		return nil, err
	}

	s.logger.Security().AdminAction(actor.ID, "create_campaign", authorization.CampaignResource(created.ID))

	return s.view(created), nil
}

// UpdateCampaign applies a partial update, the merged campaign is validated as a whole
func (s *Service) UpdateCampaign(ctx context.Context, actor *types.User, id string, req *UpdateCampaignRequest) (*CampaignView, error) {
	ctx, span := s.tracer.Start(ctx, "campaigns.Service.UpdateCampaign")
	defer span.End()

	c, err := s.campaign(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Check(ctx, actor, authorization.CAN_EDIT_PERMISSION, c.CompanyID); err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	vErr := new(validation.Error)
	paths := make([]string, 0)

	setString := func(path string, dst *string, v *string) {
		if v != nil {
			*dst = *v
			paths = append(paths, path)
		}
	}

	setString("name", &c.Name, req.Name)
	setString("description", &c.Description, req.Description)
	setString("prize_emoji", &c.PrizeEmoji, req.PrizeEmoji)
	setString("prize_image_url", &c.PrizeImageURL, req.PrizeImageURL)
	setString("prize_description", &c.PrizeDescription, req.PrizeDescription)

	if req.StartDate != nil {
		c.StartDate = *req.StartDate
		paths = append(paths, "start_date")
	}

	if req.EndDate != nil {
		c.EndDate = *req.EndDate
		paths = append(paths, "end_date")
	}

	if req.TargetAmount != nil {
		c.TargetAmount = target(*req.TargetAmount, vErr)
		paths = append(paths, "target_amount")
	}

	if req.IsActive != nil {
		c.IsActive = *req.IsActive
		paths = append(paths, "is_active")
	}

	if c.PrizeEmoji == "" {
		c.PrizeEmoji = types.DefaultPrizeEmoji
	}

	checkPeriod(c, vErr)

	if err := vErr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateCampaign(ctx, c, paths); err != nil {
		return nil, err
	}

	s.logger.Security().AdminAction(actor.ID, "update_campaign", authorization.CampaignResource(c.ID))

	updated, err := s.store.GetCampaignByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return s.view(updated), nil
}

func (s *Service) ListParticipants(ctx context.Context, actor *types.User, campaignID string) ([]*types.Participant, error) {
	ctx, span := s.tracer.Start(ctx, "campaigns.Service.ListParticipants")
	defer span.End()

	if _, err := s.campaign(ctx, actor, campaignID); err != nil {
		return nil, err
	}

	return s.store.ListParticipants(ctx, campaignID)
}

// AddParticipant enrolls an active member of the campaign's company
func (s *Service) AddParticipant(ctx context.Context, actor *types.User, campaignID, userID string) (*types.Participant, error) {
	ctx, span := s.tracer.Start(ctx, "campaigns.Service.AddParticipant")
	defer span.End()

	c, err := s.campaign(ctx, actor, campaignID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Check(ctx, actor, authorization.CAN_EDIT_PERMISSION, c.CompanyID); err != nil {
		return nil, err
	}

	if err := s.validator.Struct(&AddParticipantRequest{UserID: userID}); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	if user == nil || !user.BelongsTo(c.CompanyID) {
		return nil, validation.NewError("user_id", "is not a member of the company")
	}

	exists, err := s.store.IsParticipant(ctx, c.ID, user.ID)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, fmt.Errorf("%w: %s already participates in campaign %s", storage.ErrDuplicateKey, user.ID, c.ID)
	}

	p, err := s.store.AddParticipant(ctx, c.ID, user.ID)
	if err != nil {
		return nil, err
	}

	p.User = user

	return p, nil
}

func (s *Service) RemoveParticipant(ctx context.Context, actor *types.User, campaignID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "campaigns.Service.RemoveParticipant")
	defer span.End()

	c, err := s.campaign(ctx, actor, campaignID)
	if err != nil {
		return err
	}

	if err := s.authz.Check(ctx, actor, authorization.CAN_EDIT_PERMISSION, c.CompanyID); err != nil {
		return err
	}

	return s.store.RemoveParticipant(ctx, c.ID, userID)
}

// target parses an optional target amount, empty means no target
func target(raw types.DecimalString, vErr *validation.Error) *types.Amount {
	if raw == "" {
		return nil
	}

	if !validation.ValidAmount(string(raw)) {
		vErr.Add("target_amount", "must be a positive amount with at most 2 decimals")
		return nil
	}

	a, err := raw.Amount()
	if err != nil {
		vErr.Add("target_amount", "must be a positive amount with at most 2 decimals")
		return nil
	}

	return &a
}

func checkPeriod(c *types.Campaign, vErr *validation.Error) {
	if c.EndDate.Before(c.StartDate) {
		vErr.Add("end_date", "must not be before start_date")
	}
}

func NewService(store StorageInterface, authz AuthorizerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.store = store
	s.authz = authz
	s.validator = validation.NewValidator()
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
