// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/tracing"
)

const (
	DefaultPurgeInterval = time.Hour

	// expired invitations are kept this long so invitees get a clear "expired" answer
	expiredRetention = 24 * time.Hour

	jobTimeout = time.Minute
)

type InvitationPurgerInterface interface {
	DeleteExpiredInvitations(ctx context.Context, before time.Time) (int64, error)
}

type Scheduler struct {
	scheduler gocron.Scheduler
	store     InvitationPurgerInterface
	interval  time.Duration
	now       func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// PurgeExpiredInvitations deletes unused invitations that expired more than a day ago
func (s *Scheduler) PurgeExpiredInvitations(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "scheduler.Scheduler.PurgeExpiredInvitations")
	defer span.End()

	n, err := s.store.DeleteExpiredInvitations(ctx, s.now().Add(-expiredRetention))
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired invitations: %w", err)
	}

	if n > 0 {
		s.logger.Infof("purged %d expired invitations", n)
	}

	return n, nil
}

func (s *Scheduler) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.PurgeExpiredInvitations(ctx); err != nil {
		s.logger.Errorf("scheduled job failed: %v", err)
	}
}

// Start registers the jobs, the first run happens immediately
func (s *Scheduler) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.purge),
		gocron.WithName("purge-expired-invitations"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule invitation purge: %w", err)
	}

	s.scheduler.Start()

	return nil
}

// Shutdown waits for running jobs to finish
func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}

func NewScheduler(store InvitationPurgerInterface, interval time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	if interval <= 0 {
		interval = DefaultPurgeInterval
	}

	s := new(Scheduler)

	s.scheduler = sched
	s.store = store
	s.interval = interval
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s, nil
}
