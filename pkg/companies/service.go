// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

import (
	"context"
	"fmt"

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

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// CreateCompany sets up a company for a caller that has none yet and makes
// the caller its first admin. The user row is created when missing.
func (s *Service) CreateCompany(ctx context.Context, subject string, actor *types.User, req *CreateCompanyRequest) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.CreateCompany")
	defer span.End()

	if subject == "" {
		return nil, authorization.ErrForbidden
	}

	if actor != nil {
		if actor.CompanyID != "" {
			return nil, fmt.Errorf("%w: user %s already belongs to a company", storage.ErrDuplicateKey, actor.ID)
		}

		if !actor.IsActive {
			s.logger.Security().AuthzFailure(actor.ID, "company:new")
			return nil, authorization.ErrForbidden
		}
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	company, err := s.store.CreateCompany(ctx, &types.Company{
		Name:           req.Name,
		LogoURL:        req.LogoURL,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
	})
	if err != nil {
		return nil, err
	}

	if actor == nil {
		if actor, err = s.store.UpsertUser(ctx, &types.User{ID: subject}); err != nil {
			return nil, err
		}
	}

	admin := *actor
	admin.Role = types.RoleAdmin
	admin.CompanyID = company.ID
	admin.IsActive = true

	if err := s.store.UpdateUser(ctx, &admin, []string{"role", "company_id", "is_active"}); err != nil {
		return nil, err
	}

	s.logger.Security().AdminAction(admin.ID, "create_company", authorization.CompanyResource(company.ID))

	return company, nil
}

func (s *Service) GetCompany(ctx context.Context, actor *types.User, id string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.GetCompany")
	defer span.End()

	if err := s.authz.Check(ctx, actor, authorization.CAN_VIEW_PERMISSION, id); err != nil {
		return nil, err
	}

	return s.store.GetCompanyByID(ctx, id)
}

func (s *Service) UpdateCompany(ctx context.Context, actor *types.User, id string, req *UpdateCompanyRequest) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.UpdateCompany")
	defer span.End()

	if err := s.authz.Check(ctx, actor, authorization.CAN_EDIT_PERMISSION, id); err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	c := &types.Company{ID: id}
	paths := make([]string, 0)

	for _, f := range []struct {
		path string
		dst  *string
		v    *string
	}{
		{"name", &c.Name, req.Name},
		{"logo_url", &c.LogoURL, req.LogoURL},
		{"primary_color", &c.PrimaryColor, req.PrimaryColor},
		{"secondary_color", &c.SecondaryColor, req.SecondaryColor},
	} {
		if f.v != nil {
			*f.dst = *f.v
			paths = append(paths, f.path)
		}
	}

	if err := s.store.UpdateCompany(ctx, c, paths); err != nil {
		return nil, err
	}

	s.logger.Security().AdminAction(actor.ID, "update_company", authorization.CompanyResource(id))

	return s.store.GetCompanyByID(ctx, id)
}

// Me returns the registered caller, identities without a user row are not found
func (s *Service) Me(ctx context.Context, actor *types.User) (*types.User, error) {
	_, span := s.tracer.Start(ctx, "companies.Service.Me")
	defer span.End()

	if actor == nil {
		return nil, fmt.Errorf("%w: user is not registered", storage.ErrNotFound)
	}

	return actor, nil
}

func (s *Service) ListSellers(ctx context.Context, actor *types.User) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.ListSellers")
	defer span.End()

	if err := s.authz.Check(ctx, actor, authorization.CAN_VIEW_PERMISSION, actor.CompanyScope()); err != nil {
		return nil, err
	}

	return s.store.ListUsersByCompanyID(ctx, actor.CompanyID)
}

// UpdateUser changes the role or the active flag of a company member. Admins
// cannot demote or deactivate themselves so a company always keeps one.
func (s *Service) UpdateUser(ctx context.Context, actor *types.User, id string, req *UpdateUserRequest) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.UpdateUser")
	defer span.End()

	target, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if target.CompanyID == "" || target.CompanyID != actor.CompanyScope() {
		return nil, fmt.Errorf("%w: user %s", storage.ErrNotFound, id)
	}

	if err := s.authz.Check(ctx, actor, authorization.CAN_EDIT_PERMISSION, target.CompanyID); err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	vErr := new(validation.Error)
	paths := make([]string, 0)

	if req.Role != nil {
		if target.ID == actor.ID && *req.Role != types.RoleAdmin {
			vErr.Add("role", "cannot demote yourself")
		}
		target.Role = *req.Role
		paths = append(paths, "role")
	}

	if req.IsActive != nil {
		if target.ID == actor.ID && !*req.IsActive {
			vErr.Add("is_active", "cannot deactivate yourself")
		}
		target.IsActive = *req.IsActive
		paths = append(paths, "is_active")
	}

	if err := vErr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateUser(ctx, target, paths); err != nil {
		return nil, err
	}

	s.logger.Security().AdminAction(actor.ID, "update_user", authorization.UserResource(target.ID))

	return target, nil
}

func NewService(store StorageInterface, authz AuthorizerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.store = store
	s.authz = authz
	s.validator = validation.NewValidator()

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
