// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"strings"

	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/tracing"
	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/internal/validation"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage   StorageInterface
	validator *validation.Validator

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:   storage,
		validator: validation.NewValidator(),
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

// HandleRegistration creates the user row of a new identity or refreshes its
// profile. Role and company are never changed here.
func (s *Service) HandleRegistration(ctx context.Context, identity *RegistrationIdentity) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	identity.ID = strings.TrimSpace(identity.ID)
	identity.Traits.Email = strings.TrimSpace(identity.Traits.Email)

	s.logger.Debugf("Handling registration for identity %s", identity.ID)

	if err := s.validator.Struct(identity); err != nil {
		return nil, err
	}

	user, err := s.storage.UpsertUser(ctx, &types.User{
		ID:              identity.ID,
		Email:           strings.ToLower(identity.Traits.Email),
		FirstName:       strings.TrimSpace(identity.Traits.FirstName),
		LastName:        strings.TrimSpace(identity.Traits.LastName),
		ProfileImageURL: identity.Traits.Picture,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Registered user %s", user.ID)

	return user, nil
}
