// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/sales-leaderboard/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

func member(id string, role types.Role, companyID string) *types.User {
	return &types.User{ID: id, Role: role, CompanyID: companyID, IsActive: true}
}

func expectSpans(ctx context.Context, tracer *MockTracingInterface, names ...string) {
	for _, name := range names {
		tracer.EXPECT().Start(gomock.Any(), name).Return(ctx, trace.SpanFromContext(ctx))
	}
}

func expectDenied(ctrl *gomock.Controller, logger *MockLoggerInterface, userID, resource string) {
	security := NewMockSecurityLoggerInterface(ctrl)
	logger.EXPECT().Security().Return(security)
	security.EXPECT().AuthzFailure(userID, resource)
}

func TestAuthorizer_Check(t *testing.T) {
	inactive := member("u-3", types.RoleAdmin, "acme")
	inactive.IsActive = false

	testCases := []struct {
		name       string
		actor      *types.User
		permission string
		companyID  string
		denied     bool
	}{
		{name: "seller can view own company", actor: member("u-1", types.RoleSeller, "acme"), permission: CAN_VIEW_PERMISSION, companyID: "acme"},
		{name: "admin can edit own company", actor: member("u-2", types.RoleAdmin, "acme"), permission: CAN_EDIT_PERMISSION, companyID: "acme"},
		{name: "admin can create in own company", actor: member("u-2", types.RoleAdmin, "acme"), permission: CAN_CREATE_PERMISSION, companyID: "acme"},
		{name: "seller cannot edit", actor: member("u-1", types.RoleSeller, "acme"), permission: CAN_EDIT_PERMISSION, companyID: "acme", denied: true},
		{name: "seller cannot delete", actor: member("u-1", types.RoleSeller, "acme"), permission: CAN_DELETE_PERMISSION, companyID: "acme", denied: true},
		{name: "admin of other company cannot view", actor: member("u-2", types.RoleAdmin, "globex"), permission: CAN_VIEW_PERMISSION, companyID: "acme", denied: true},
		{name: "inactive admin cannot view", actor: inactive, permission: CAN_VIEW_PERMISSION, companyID: "acme", denied: true},
		{name: "user without company cannot view", actor: member("u-4", types.RoleSeller, ""), permission: CAN_VIEW_PERMISSION, companyID: "acme", denied: true},
		{name: "unknown permission is denied", actor: member("u-2", types.RoleAdmin, "acme"), permission: "can_fly", companyID: "acme", denied: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			ctx := context.Background()

			expectSpans(ctx, mockTracer, "authorization.Authorizer.Check")
			if tc.denied {
				expectDenied(ctrl, mockLogger, tc.actor.ID, CompanyResource(tc.companyID))
			}

			err := NewAuthorizer(mockTracer, mockMonitor, mockLogger).Check(ctx, tc.actor, tc.permission, tc.companyID)

			if tc.denied && !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
			if !tc.denied && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestAuthorizer_CheckAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	ctx := context.Background()

	expectSpans(ctx, mockTracer, "authorization.Authorizer.Check")
	expectDenied(ctrl, mockLogger, "anonymous", "company:acme")

	err := NewAuthorizer(mockTracer, NewMockMonitorInterface(ctrl), mockLogger).Check(ctx, nil, CAN_VIEW_PERMISSION, "acme")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAuthorizer_CanRecordSale(t *testing.T) {
	campaign := &types.Campaign{ID: "c-1", CompanyID: "acme"}

	testCases := []struct {
		name     string
		actor    *types.User
		sellerID string
		resource string
		spans    []string
	}{
		{
			name:     "admin records for another seller",
			actor:    member("u-2", types.RoleAdmin, "acme"),
			sellerID: "u-1",
			spans:    []string{"authorization.Authorizer.CanRecordSale", "authorization.Authorizer.Check"},
		},
		{
			name:     "seller records for self",
			actor:    member("u-1", types.RoleSeller, "acme"),
			sellerID: "u-1",
			spans:    []string{"authorization.Authorizer.CanRecordSale", "authorization.Authorizer.Check"},
		},
		{
			name:     "seller records for someone else",
			actor:    member("u-1", types.RoleSeller, "acme"),
			sellerID: "u-5",
			resource: "campaign:c-1",
			spans:    []string{"authorization.Authorizer.CanRecordSale", "authorization.Authorizer.Check"},
		},
		{
			name:     "admin of another company",
			actor:    member("u-9", types.RoleAdmin, "globex"),
			sellerID: "u-1",
			resource: "company:acme",
			spans:    []string{"authorization.Authorizer.CanRecordSale", "authorization.Authorizer.Check"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			ctx := context.Background()

			expectSpans(ctx, mockTracer, tc.spans...)
			if tc.resource != "" {
				expectDenied(ctrl, mockLogger, tc.actor.ID, tc.resource)
			}

			err := NewAuthorizer(mockTracer, NewMockMonitorInterface(ctrl), mockLogger).CanRecordSale(ctx, tc.actor, campaign, tc.sellerID)

			if tc.resource != "" && !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
			if tc.resource == "" && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestAuthorizer_CanDeleteSale(t *testing.T) {
	campaign := &types.Campaign{ID: "c-1", CompanyID: "acme"}
	sale := &types.Sale{ID: "s-1", CampaignID: "c-1", SellerID: "u-1", CreatedBy: "u-7"}

	testCases := []struct {
		name     string
		actor    *types.User
		resource string
	}{
		{name: "admin deletes", actor: member("u-2", types.RoleAdmin, "acme")},
		{name: "creator deletes", actor: member("u-7", types.RoleSeller, "acme")},
		{name: "seller who did not record it", actor: member("u-1", types.RoleSeller, "acme"), resource: "sale:s-1"},
		{name: "outsider", actor: member("u-8", types.RoleAdmin, "globex"), resource: "company:acme"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			ctx := context.Background()

			expectSpans(ctx, mockTracer, "authorization.Authorizer.CanDeleteSale", "authorization.Authorizer.Check")
			if tc.resource != "" {
				expectDenied(ctrl, mockLogger, tc.actor.ID, tc.resource)
			}

			err := NewAuthorizer(mockTracer, NewMockMonitorInterface(ctrl), mockLogger).CanDeleteSale(ctx, tc.actor, campaign, sale)

			if tc.resource != "" && !errors.Is(err, ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
			if tc.resource == "" && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}
