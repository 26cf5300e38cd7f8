// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"crypto/rand"
	"encoding/base64"
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

const tokenBytes = 32

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	store     StorageInterface
	authz     AuthorizerInterface
	validator *validation.Validator
	lifetime  time.Duration

	now   func() time.Time
	token func() (string, error)

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// NewToken returns 32 random bytes encoded as unpadded base64url
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate invitation token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *Service) CreateInvitation(ctx context.Context, actor *types.User, req *CreateInvitationRequest) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.CreateInvitation")
	defer span.End()

	if err := s.authz.Check(ctx, actor, authorization.CAN_CREATE_PERMISSION, actor.CompanyScope()); err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	token, err := s.token()
	if err != nil {
		return nil, err
	}

	inv, err := s.store.CreateInvitation(ctx, &types.Invitation{
		Email:     req.Email,
		CompanyID: actor.CompanyID,
		Role:      req.Role,
		Token:     token,
		ExpiresAt: s.now().Add(s.lifetime),
		CreatedBy: actor.ID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Security().AdminAction(actor.ID, "create_invitation", authorization.InvitationResource(inv.ID))

	return inv, nil
}

func (s *Service) ListInvitations(ctx context.Context, actor *types.User) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.ListInvitations")
	defer span.End()

	if err := s.authz.Check(ctx, actor, authorization.CAN_EDIT_PERMISSION, actor.CompanyScope()); err != nil {
		return nil, err
	}

	return s.store.ListInvitationsByCompanyID(ctx, actor.CompanyID)
}

// usable loads the invitation behind token and checks it can still be accepted
func (s *Service) usable(ctx context.Context, token string) (*types.Invitation, error) {
	inv, err := s.store.GetInvitationByToken(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvitationNotFound
	}

	if err != nil {
		return nil, err
	}

	if inv.UsedAt != nil {
		return nil, ErrInvitationUsed
	}

	if !s.now().Before(inv.ExpiresAt) {
		return nil, ErrInvitationExpired
	}

	return inv, nil
}

func (s *Service) GetInvitation(ctx context.Context, token string) (*InvitationView, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.GetInvitation")
	defer span.End()

	inv, err := s.usable(ctx, token)
	if err != nil {
		return nil, err
	}

	company, err := s.store.GetCompanyByID(ctx, inv.CompanyID)
	if err != nil {
		return nil, err
	}

	return &InvitationView{
		Email:       inv.Email,
		CompanyID:   inv.CompanyID,
		CompanyName: company.Name,
		Role:        inv.Role,
		ExpiresAt:   inv.ExpiresAt,
	}, nil
}

// AcceptInvitation makes the caller a member of the inviting company with the
// invited role. The token is consumed with a conditional update, a concurrent
// accept that loses the race gets ErrInvitationUsed.
func (s *Service) AcceptInvitation(ctx context.Context, subject string, actor *types.User, token string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.AcceptInvitation")
	defer span.End()

	if subject == "" {
		return nil, authorization.ErrForbidden
	}

	inv, err := s.usable(ctx, token)
	if err != nil {
		return nil, err
	}

	if actor != nil && actor.CompanyID != "" && actor.CompanyID != inv.CompanyID {
		return nil, fmt.Errorf("%w: user %s already belongs to a company", storage.ErrDuplicateKey, actor.ID)
	}

	// an admin taking a seller invitation of their own company would demote themselves
	if actor.IsAdmin() && actor.CompanyID == inv.CompanyID && inv.Role != types.RoleAdmin {
		return nil, fmt.Errorf("%w: user %s is already an admin of company %s", storage.ErrDuplicateKey, actor.ID, inv.CompanyID)
	}

	if err := s.store.MarkInvitationUsed(ctx, inv.ID, s.now()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvitationUsed
		}
		return nil, err
	}

	if actor == nil {
		if actor, err = s.store.UpsertUser(ctx, &types.User{ID: subject, Email: inv.Email}); err != nil {
			return nil, err
		}
	}

	member := *actor
	member.CompanyID = inv.CompanyID
	member.Role = inv.Role
	member.IsActive = true

	if err := s.store.UpdateUser(ctx, &member, []string{"role", "company_id", "is_active"}); err != nil {
		return nil, err
	}

	s.logger.Infof("user %s joined company %s as %s", member.ID, member.CompanyID, member.Role)

	return &member, nil
}

func NewService(store StorageInterface, authz AuthorizerInterface, lifetime time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.store = store
	s.authz = authz
	s.validator = validation.NewValidator()
	s.lifetime = lifetime

	s.now = time.Now
	s.token = NewToken

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
