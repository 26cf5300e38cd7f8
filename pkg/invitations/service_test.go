// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/internal/validation"
)

//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

var (
	testNow   = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	testAdmin = &types.User{ID: "admin-1", Role: types.RoleAdmin, CompanyID: "acme", IsActive: true}
)

func testInvitation() *types.Invitation {
	return &types.Invitation{
		ID:        "inv-1",
		Email:     "new@acme.test",
		CompanyID: "acme",
		Role:      types.RoleSeller,
		Token:     "tok",
		ExpiresAt: testNow.Add(time.Hour),
	}
}

type serviceMocks struct {
	storage  *MockStorageInterface
	authz    *MockAuthorizerInterface
	logger   *MockLoggerInterface
	security *MockSecurityLoggerInterface
}

func newTestService(t *testing.T, span string) (*Service, *serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		storage:  NewMockStorageInterface(ctrl),
		authz:    NewMockAuthorizerInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
		security: NewMockSecurityLoggerInterface(ctrl),
	}

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), span).Return(context.Background(), trace.SpanFromContext(context.Background()))
	m.logger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()

	svc := NewService(m.storage, m.authz, 24*time.Hour, mockTracer, NewMockMonitorInterface(ctrl), m.logger)
	svc.now = func() time.Time { return testNow }
	svc.token = func() (string, error) { return "tok", nil }

	return svc, m
}

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(a)
	if err != nil {
		t.Fatalf("expected base64url token, got %q: %v", a, err)
	}

	if len(raw) != tokenBytes {
		t.Fatalf("expected %d random bytes, got %d", tokenBytes, len(raw))
	}

	if b, _ := NewToken(); a == b {
		t.Fatal("expected distinct tokens")
	}
}

func TestService_CreateInvitation(t *testing.T) {
	svc, m := newTestService(t, "invitations.Service.CreateInvitation")

	m.authz.EXPECT().Check(gomock.Any(), testAdmin, authorization.CAN_CREATE_PERMISSION, "acme").Return(nil)
	m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, i *types.Invitation) (*types.Invitation, error) {
			if !i.ExpiresAt.Equal(testNow.Add(24 * time.Hour)) {
				t.Errorf("expected expiry after the configured lifetime, got %s", i.ExpiresAt)
			}
			if i.Token != "tok" || i.CompanyID != "acme" || i.CreatedBy != testAdmin.ID {
				t.Errorf("unexpected invitation %+v", i)
			}

			created := *i
			created.ID = "inv-1"
			return &created, nil
		},
	)
	m.logger.EXPECT().Security().Return(m.security)
	m.security.EXPECT().AdminAction(testAdmin.ID, "create_invitation", "invitation:inv-1")

	inv, err := svc.CreateInvitation(context.Background(), testAdmin, &CreateInvitationRequest{Email: "new@acme.test", Role: types.RoleSeller})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if inv.Token != "tok" {
		t.Fatalf("expected the token to be returned to the admin, got %q", inv.Token)
	}
}

func TestService_CreateInvitationRejected(t *testing.T) {
	svc, m := newTestService(t, "invitations.Service.CreateInvitation")
	m.authz.EXPECT().Check(gomock.Any(), testAdmin, authorization.CAN_CREATE_PERMISSION, "acme").Return(nil)

	_, err := svc.CreateInvitation(context.Background(), testAdmin, &CreateInvitationRequest{Email: "nope", Role: "owner"})

	vErr, ok := validation.AsError(err)
	if !ok || len(vErr.Fields) != 2 {
		t.Fatalf("expected email and role to be rejected, got %v", err)
	}
}

func TestService_GetInvitation(t *testing.T) {
	used := testNow.Add(-time.Minute)

	tests := []struct {
		name        string
		invitation  func() *types.Invitation
		lookupErr   error
		expectedErr error
	}{
		{
			name:       "usable",
			invitation: testInvitation,
		},
		{
			name:        "unknown",
			invitation:  func() *types.Invitation { return nil },
			lookupErr:   fmt.Errorf("%w: invitation", storage.ErrNotFound),
			expectedErr: ErrInvitationNotFound,
		},
		{
			name: "used",
			invitation: func() *types.Invitation {
				i := testInvitation()
				i.UsedAt = &used
				return i
			},
			expectedErr: ErrInvitationUsed,
		},
		{
			name: "expired",
			invitation: func() *types.Invitation {
				i := testInvitation()
				i.ExpiresAt = testNow
				return i
			},
			expectedErr: ErrInvitationExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, "invitations.Service.GetInvitation")

			m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(tt.invitation(), tt.lookupErr)
			if tt.expectedErr == nil {
				m.storage.EXPECT().GetCompanyByID(gomock.Any(), "acme").Return(&types.Company{ID: "acme", Name: "Acme"}, nil)
			}

			view, err := svc.GetInvitation(context.Background(), "tok")
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}

			if tt.expectedErr == nil && view.CompanyName != "Acme" {
				t.Fatalf("expected company name, got %+v", view)
			}
		})
	}
}

func TestService_AcceptInvitation(t *testing.T) {
	tests := []struct {
		name       string
		actor      *types.User
		setupMocks func(*MockStorageInterface)
	}{
		{
			name: "new user",
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().UpsertUser(gomock.Any(), &types.User{ID: "newbie", Email: "new@acme.test"}).Return(&types.User{ID: "newbie", Role: types.RoleSeller, IsActive: true}, nil)
			},
		},
		{
			name:       "registered user without company",
			actor:      &types.User{ID: "newbie", Role: types.RoleSeller},
			setupMocks: func(*MockStorageInterface) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, "invitations.Service.AcceptInvitation")

			m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(testInvitation(), nil)
			m.storage.EXPECT().MarkInvitationUsed(gomock.Any(), "inv-1", testNow).Return(nil)
			tt.setupMocks(m.storage)
			m.storage.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), []string{"role", "company_id", "is_active"}).Return(nil)

			u, err := svc.AcceptInvitation(context.Background(), "newbie", tt.actor, "tok")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if u.CompanyID != "acme" || u.Role != types.RoleSeller || !u.IsActive {
				t.Fatalf("expected active seller of acme, got %+v", u)
			}
		})
	}
}

func TestService_AcceptInvitationRejected(t *testing.T) {
	t.Run("lost race", func(t *testing.T) {
		svc, m := newTestService(t, "invitations.Service.AcceptInvitation")

		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(testInvitation(), nil)
		m.storage.EXPECT().MarkInvitationUsed(gomock.Any(), "inv-1", testNow).Return(fmt.Errorf("%w: invitation", storage.ErrNotFound))

		if _, err := svc.AcceptInvitation(context.Background(), "newbie", nil, "tok"); !errors.Is(err, ErrInvitationUsed) {
			t.Fatalf("expected used, got %v", err)
		}
	})

	t.Run("member of another company", func(t *testing.T) {
		svc, m := newTestService(t, "invitations.Service.AcceptInvitation")

		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(testInvitation(), nil)

		other := &types.User{ID: "eve", CompanyID: "globex", IsActive: true}
		if _, err := svc.AcceptInvitation(context.Background(), "eve", other, "tok"); !errors.Is(err, storage.ErrDuplicateKey) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("admin of the same company", func(t *testing.T) {
		svc, m := newTestService(t, "invitations.Service.AcceptInvitation")

		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), "tok").Return(testInvitation(), nil)
		m.storage.EXPECT().MarkInvitationUsed(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		m.storage.EXPECT().UpdateUser(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		if _, err := svc.AcceptInvitation(context.Background(), testAdmin.ID, testAdmin, "tok"); !errors.Is(err, storage.ErrDuplicateKey) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		svc, _ := newTestService(t, "invitations.Service.AcceptInvitation")

		if _, err := svc.AcceptInvitation(context.Background(), "", nil, "tok"); !errors.Is(err, authorization.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})
}
