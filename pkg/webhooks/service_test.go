// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/internal/validation"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestService_HandleRegistration(t *testing.T) {
	dbErr := errors.New("db error")

	testCases := []struct {
		name        string
		identity    *RegistrationIdentity
		setupMocks  func(*MockStorageInterface, *MockLoggerInterface)
		expectedErr error
		validation  bool
	}{
		{
			name: "success",
			identity: &RegistrationIdentity{
				ID: "identity-123",
				Traits: RegistrationTraits{
					Email:     " Alice@Example.com ",
					FirstName: " Alice ",
					LastName:  "Smith",
					Picture:   "https://img.example.com/alice.png",
				},
			},
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().UpsertUser(gomock.Any(), &types.User{
					ID:              "identity-123",
					Email:           "alice@example.com",
					FirstName:       "Alice",
					LastName:        "Smith",
					ProfileImageURL: "https://img.example.com/alice.png",
				}).Return(&types.User{ID: "identity-123", Role: types.RoleSeller, IsActive: true}, nil)
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any())
			},
		},
		{
			name:     "success - no traits",
			identity: &RegistrationIdentity{ID: "identity-123"},
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().UpsertUser(gomock.Any(), &types.User{ID: "identity-123"}).Return(&types.User{ID: "identity-123"}, nil)
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any())
			},
		},
		{
			name:       "error - empty identity id",
			identity:   &RegistrationIdentity{ID: "  ", Traits: RegistrationTraits{Email: "user@example.com"}},
			setupMocks: func(*MockStorageInterface, *MockLoggerInterface) {},
			validation: true,
		},
		{
			name:       "error - invalid email",
			identity:   &RegistrationIdentity{ID: "identity-123", Traits: RegistrationTraits{Email: "nope"}},
			setupMocks: func(*MockStorageInterface, *MockLoggerInterface) {},
			validation: true,
		},
		{
			name:     "error - storage",
			identity: &RegistrationIdentity{ID: "identity-123"},
			setupMocks: func(mockStorage *MockStorageInterface, _ *MockLoggerInterface) {
				mockStorage.EXPECT().UpsertUser(gomock.Any(), gomock.Any()).Return(nil, dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "webhooks.Service.HandleRegistration").Return(ctx, trace.SpanFromContext(ctx))
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())

			tc.setupMocks(mockStorage, mockLogger)

			svc := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)
			_, err := svc.HandleRegistration(ctx, tc.identity)

			if tc.validation {
				if _, ok := validation.AsError(err); !ok {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}

			if !errors.Is(err, tc.expectedErr) {
				t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
			}
		})
	}
}
