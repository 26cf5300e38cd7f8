// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package leaderboard -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package leaderboard -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package leaderboard -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package leaderboard -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestService_GetLeaderboard(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	viewer := &types.User{ID: "alice", Role: types.RoleSeller, CompanyID: "acme", IsActive: true}
	campaign := &types.Campaign{
		ID:        "c1",
		CompanyID: "acme",
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
		IsActive:  true,
	}
	entries := []*types.LeaderboardEntry{
		{Rank: 1, SellerID: "bob", SellerName: "Bob", TotalAmount: types.MustAmount("150"), SalesCount: 1},
		{Rank: 2, SellerID: "alice", SellerName: "Alice", TotalAmount: types.MustAmount("100.10"), SalesCount: 2},
	}
	dbErr := errors.New("db error")

	tests := []struct {
		name            string
		actor           *types.User
		setupMocks      func(*MockStorageInterface, *MockAuthorizerInterface)
		expectedEntries int
		expectedTotal   string
		expectedRunning bool
		expectedErr     error
	}{
		{
			name:  "ranked entries",
			actor: viewer,
			setupMocks: func(s *MockStorageInterface, a *MockAuthorizerInterface) {
				a.EXPECT().Check(gomock.Any(), viewer, authorization.CAN_VIEW_PERMISSION, "acme").Return(nil)
				s.EXPECT().GetCampaignByID(gomock.Any(), "c1").Return(campaign, nil)
				s.EXPECT().GetLeaderboard(gomock.Any(), "acme", "c1").Return(entries, nil)
			},
			expectedEntries: 2,
			expectedTotal:   "250.10",
			expectedRunning: true,
		},
		{
			name:  "no sales yet",
			actor: viewer,
			setupMocks: func(s *MockStorageInterface, a *MockAuthorizerInterface) {
				a.EXPECT().Check(gomock.Any(), viewer, authorization.CAN_VIEW_PERMISSION, "acme").Return(nil)
				s.EXPECT().GetCampaignByID(gomock.Any(), "c1").Return(campaign, nil)
				s.EXPECT().GetLeaderboard(gomock.Any(), "acme", "c1").Return(nil, nil)
			},
			expectedTotal:   "0.00",
			expectedRunning: true,
		},
		{
			name:  "unknown campaign is empty",
			actor: viewer,
			setupMocks: func(s *MockStorageInterface, a *MockAuthorizerInterface) {
				a.EXPECT().Check(gomock.Any(), viewer, authorization.CAN_VIEW_PERMISSION, "acme").Return(nil)
				s.EXPECT().GetCampaignByID(gomock.Any(), "c1").Return(nil, fmt.Errorf("%w: campaign", storage.ErrNotFound))
			},
			expectedTotal: "0.00",
		},
		{
			name:  "campaign of another company is empty",
			actor: viewer,
			setupMocks: func(s *MockStorageInterface, a *MockAuthorizerInterface) {
				foreign := *campaign
				foreign.CompanyID = "globex"
				a.EXPECT().Check(gomock.Any(), viewer, authorization.CAN_VIEW_PERMISSION, "acme").Return(nil)
				s.EXPECT().GetCampaignByID(gomock.Any(), "c1").Return(&foreign, nil)
			},
			expectedTotal: "0.00",
		},
		{
			name: "unregistered caller",
			setupMocks: func(_ *MockStorageInterface, a *MockAuthorizerInterface) {
				a.EXPECT().Check(gomock.Any(), nil, authorization.CAN_VIEW_PERMISSION, "").Return(authorization.ErrForbidden)
			},
			expectedErr: authorization.ErrForbidden,
		},
		{
			name:  "storage error",
			actor: viewer,
			setupMocks: func(s *MockStorageInterface, a *MockAuthorizerInterface) {
				a.EXPECT().Check(gomock.Any(), viewer, authorization.CAN_VIEW_PERMISSION, "acme").Return(nil)
				s.EXPECT().GetCampaignByID(gomock.Any(), "c1").Return(campaign, nil)
				s.EXPECT().GetLeaderboard(gomock.Any(), "acme", "c1").Return(nil, dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockAuthz := NewMockAuthorizerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			svc := NewService(mockStorage, mockAuthz, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
			svc.now = func() time.Time { return now }

			mockTracer.EXPECT().Start(gomock.Any(), "leaderboard.Service.GetLeaderboard").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockStorage, mockAuthz)

			board, err := svc.GetLeaderboard(context.Background(), tt.actor, "c1")

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if board.Entries == nil {
				t.Fatal("entries must never be nil")
			}

			if len(board.Entries) != tt.expectedEntries {
				t.Fatalf("expected %d entries, got %d", tt.expectedEntries, len(board.Entries))
			}

			if board.TotalAmount.String() != tt.expectedTotal {
				t.Errorf("expected total %s, got %s", tt.expectedTotal, board.TotalAmount)
			}

			if board.Running != tt.expectedRunning {
				t.Errorf("expected running %v, got %v", tt.expectedRunning, board.Running)
			}
		})
	}
}
