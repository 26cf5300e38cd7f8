// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sales

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/live"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/internal/validation"
)

//go:generate mockgen -build_flags=--mod=mod -package sales -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package sales -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package sales -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package sales -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

var (
	testCampaign = &types.Campaign{ID: "campaign-1", CompanyID: "acme", Name: "Q1", IsActive: true}
	testAdmin    = &types.User{ID: "admin-1", Role: types.RoleAdmin, CompanyID: "acme", IsActive: true}
	testAlice    = &types.User{ID: "alice", FirstName: "Alice", LastName: "Smith", Role: types.RoleSeller, CompanyID: "acme", IsActive: true}
)

type serviceMocks struct {
	storage   *MockStorageInterface
	authz     *MockAuthorizerInterface
	publisher *MockPublisherInterface
	logger    *MockLoggerInterface
	security  *MockSecurityLoggerInterface
}

func newTestService(t *testing.T, span string) (*Service, *serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		storage:   NewMockStorageInterface(ctrl),
		authz:     NewMockAuthorizerInterface(ctrl),
		publisher: NewMockPublisherInterface(ctrl),
		logger:    NewMockLoggerInterface(ctrl),
		security:  NewMockSecurityLoggerInterface(ctrl),
	}

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), span).Return(context.Background(), trace.SpanFromContext(context.Background()))
	m.logger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()

	return NewService(m.storage, m.authz, m.publisher, mockTracer, NewMockMonitorInterface(ctrl), m.logger), m
}

func validRequest() *RecordSaleRequest {
	return &RecordSaleRequest{
		CampaignID:         testCampaign.ID,
		SellerID:           testAlice.ID,
		Amount:             "100.00",
		CustomerName:       "X Corp",
		ProductDescription: "Annual plan",
	}
}

func expectEligible(m *serviceMocks, seller *types.User) {
	m.storage.EXPECT().GetCampaignByID(gomock.Any(), testCampaign.ID).Return(testCampaign, nil)
	m.authz.EXPECT().CanRecordSale(gomock.Any(), gomock.Any(), testCampaign, seller.ID).Return(nil)
	m.storage.EXPECT().GetUserByID(gomock.Any(), seller.ID).Return(seller, nil)
	m.storage.EXPECT().IsParticipant(gomock.Any(), testCampaign.ID, seller.ID).Return(true, nil)
}

func TestService_RecordSale(t *testing.T) {
	svc, m := newTestService(t, "sales.Service.RecordSale")

	expectEligible(m, testAlice)

	m.storage.EXPECT().CreateSale(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s *types.Sale) (*types.Sale, error) {
			if s.CreatedBy != testAdmin.ID {
				t.Errorf("expected created_by %s, got %s", testAdmin.ID, s.CreatedBy)
			}
			if s.Amount.String() != "100.00" {
				t.Errorf("expected amount 100.00, got %s", s.Amount)
			}

			created := *s
			created.ID = "sale-1"
			created.SaleDate = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
			return &created, nil
		},
	)

	var published *live.Event
	m.publisher.EXPECT().Publish(gomock.Any(), "acme", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, e *live.Event) int {
			published = e
			return 1
		},
	).Times(1)

	sale, err := svc.RecordSale(context.Background(), testAdmin, validRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if sale.ID != "sale-1" || sale.SellerName != "Alice Smith" {
		t.Fatalf("unexpected sale %+v", sale)
	}

	if published == nil {
		t.Fatal("expected a live event")
	}

	if published.Type != live.EventNewSale || published.Data.SellerName != "Alice Smith" || published.Data.Amount != "100.00" || published.Data.CustomerName != "X Corp" {
		t.Fatalf("unexpected event %+v", published)
	}
}

func TestService_RecordSaleDefaultsSellerToActor(t *testing.T) {
	svc, m := newTestService(t, "sales.Service.RecordSale")

	expectEligible(m, testAlice)
	m.storage.EXPECT().CreateSale(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s *types.Sale) (*types.Sale, error) {
			created := *s
			created.ID = "sale-2"
			return &created, nil
		},
	)
	m.publisher.EXPECT().Publish(gomock.Any(), "acme", gomock.Any()).Return(0)

	req := validRequest()
	req.SellerID = ""

	sale, err := svc.RecordSale(context.Background(), testAlice, req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if sale.SellerID != testAlice.ID || sale.CreatedBy != testAlice.ID {
		t.Fatalf("expected the caller as seller and recorder, got %+v", sale)
	}
}

func TestService_RecordSaleRejected(t *testing.T) {
	dbErr := errors.New("db error")

	tests := []struct {
		name        string
		mutate      func(*RecordSaleRequest)
		setupMocks  func(*serviceMocks)
		field       string
		expectedErr error
	}{
		{
			name:   "non numeric amount",
			mutate: func(r *RecordSaleRequest) { r.Amount = "abc" },
			field:  "amount",
		},
		{
			name:   "missing amount",
			mutate: func(r *RecordSaleRequest) { r.Amount = "" },
			field:  "amount",
		},
		{
			name:   "negative amount",
			mutate: func(r *RecordSaleRequest) { r.Amount = "-5" },
			field:  "amount",
		},
		{
			name:   "three decimals",
			mutate: func(r *RecordSaleRequest) { r.Amount = "1.005" },
			field:  "amount",
		},
		{
			name:   "missing customer",
			mutate: func(r *RecordSaleRequest) { r.CustomerName = "" },
			field:  "customer_name",
		},
		{
			name:   "unknown campaign",
			mutate: func(*RecordSaleRequest) {},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetCampaignByID(gomock.Any(), testCampaign.ID).Return(nil, fmt.Errorf("%w: campaign", storage.ErrNotFound))
			},
			expectedErr: storage.ErrNotFound,
		},
		{
			name:   "unknown seller",
			mutate: func(*RecordSaleRequest) {},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetCampaignByID(gomock.Any(), testCampaign.ID).Return(testCampaign, nil)
				m.authz.EXPECT().CanRecordSale(gomock.Any(), gomock.Any(), testCampaign, testAlice.ID).Return(nil)
				m.storage.EXPECT().GetUserByID(gomock.Any(), testAlice.ID).Return(nil, fmt.Errorf("%w: user", storage.ErrNotFound))
			},
			expectedErr: storage.ErrNotFound,
		},
		{
			name:   "forbidden",
			mutate: func(*RecordSaleRequest) {},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetCampaignByID(gomock.Any(), testCampaign.ID).Return(testCampaign, nil)
				m.authz.EXPECT().CanRecordSale(gomock.Any(), gomock.Any(), testCampaign, testAlice.ID).Return(authorization.ErrForbidden)
			},
			expectedErr: authorization.ErrForbidden,
		},
		{
			name:   "seller from another company",
			mutate: func(*RecordSaleRequest) {},
			setupMocks: func(m *serviceMocks) {
				outsider := *testAlice
				outsider.CompanyID = "globex"
				m.storage.EXPECT().GetCampaignByID(gomock.Any(), testCampaign.ID).Return(testCampaign, nil)
				m.authz.EXPECT().CanRecordSale(gomock.Any(), gomock.Any(), testCampaign, testAlice.ID).Return(nil)
				m.storage.EXPECT().GetUserByID(gomock.Any(), testAlice.ID).Return(&outsider, nil)
			},
			expectedErr: storage.ErrNotFound,
		},
		{
			name:   "seller is not a participant",
			mutate: func(*RecordSaleRequest) {},
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetCampaignByID(gomock.Any(), testCampaign.ID).Return(testCampaign, nil)
				m.authz.EXPECT().CanRecordSale(gomock.Any(), gomock.Any(), testCampaign, testAlice.ID).Return(nil)
				m.storage.EXPECT().GetUserByID(gomock.Any(), testAlice.ID).Return(testAlice, nil)
				m.storage.EXPECT().IsParticipant(gomock.Any(), testCampaign.ID, testAlice.ID).Return(false, nil)
			},
			field: "seller_id",
		},
		{
			name:   "storage failure",
			mutate: func(*RecordSaleRequest) {},
			setupMocks: func(m *serviceMocks) {
				expectEligible(m, testAlice)
				m.storage.EXPECT().CreateSale(gomock.Any(), gomock.Any()).Return(nil, dbErr)
			},
			expectedErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, "sales.Service.RecordSale")
			if tt.setupMocks != nil {
				tt.setupMocks(m)
			}

			m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			req := validRequest()
			tt.mutate(req)

			_, err := svc.RecordSale(context.Background(), testAdmin, req)
			if err == nil {
				t.Fatal("expected an error")
			}

			if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}

			if tt.field == "" {
				if _, ok := validation.AsError(err); ok {
					t.Fatalf("expected a non validation error, got %v", err)
				}
			} else {
				vErr, ok := validation.AsError(err)
				if !ok {
					t.Fatalf("expected a validation error, got %v", err)
				}
				if vErr.Fields[0].Field != tt.field {
					t.Fatalf("expected failing field %s, got %+v", tt.field, vErr.Fields)
				}
			}
		})
	}
}

func TestService_DeleteSale(t *testing.T) {
	sale := &types.Sale{ID: "sale-1", CampaignID: testCampaign.ID, SellerID: testAlice.ID, CreatedBy: testAdmin.ID}
	otherCampaign := &types.Campaign{ID: "campaign-9", CompanyID: "globex"}

	tests := []struct {
		name        string
		setupMocks  func(*serviceMocks)
		expectedErr error
	}{
		{
			name: "success",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetSaleByID(gomock.Any(), sale.ID).Return(sale, nil)
				m.storage.EXPECT().GetCampaignByID(gomock.Any(), testCampaign.ID).Return(testCampaign, nil)
				m.authz.EXPECT().CanDeleteSale(gomock.Any(), testAdmin, testCampaign, sale).Return(nil)
				m.storage.EXPECT().DeleteSale(gomock.Any(), sale.ID).Return(nil)
				m.logger.EXPECT().Security().Return(m.security)
				m.security.EXPECT().AdminAction(testAdmin.ID, "delete_sale", "sale:sale-1")
			},
		},
		{
			name: "unknown sale",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetSaleByID(gomock.Any(), sale.ID).Return(nil, fmt.Errorf("%w: sale", storage.ErrNotFound))
			},
			expectedErr: storage.ErrNotFound,
		},
		{
			name: "sale of another company",
			setupMocks: func(m *serviceMocks) {
				foreign := *sale
				foreign.CampaignID = otherCampaign.ID
				m.storage.EXPECT().GetSaleByID(gomock.Any(), sale.ID).Return(&foreign, nil)
				m.storage.EXPECT().GetCampaignByID(gomock.Any(), otherCampaign.ID).Return(otherCampaign, nil)
			},
			expectedErr: storage.ErrNotFound,
		},
		{
			name: "forbidden",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetSaleByID(gomock.Any(), sale.ID).Return(sale, nil)
				m.storage.EXPECT().GetCampaignByID(gomock.Any(), testCampaign.ID).Return(testCampaign, nil)
				m.authz.EXPECT().CanDeleteSale(gomock.Any(), testAdmin, testCampaign, sale).Return(authorization.ErrForbidden)
			},
			expectedErr: authorization.ErrForbidden,
		},
		{
			name: "deleted concurrently",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetSaleByID(gomock.Any(), sale.ID).Return(sale, nil)
				m.storage.EXPECT().GetCampaignByID(gomock.Any(), testCampaign.ID).Return(testCampaign, nil)
				m.authz.EXPECT().CanDeleteSale(gomock.Any(), testAdmin, testCampaign, sale).Return(nil)
				m.storage.EXPECT().DeleteSale(gomock.Any(), sale.ID).Return(fmt.Errorf("%w: sale", storage.ErrNotFound))
			},
			expectedErr: storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestService(t, "sales.Service.DeleteSale")
			tt.setupMocks(m)

			err := svc.DeleteSale(context.Background(), testAdmin, sale.ID)

			if tt.expectedErr == nil && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestService_ListSales(t *testing.T) {
	svc, m := newTestService(t, "sales.Service.ListSales")

	expected := []*types.Sale{{ID: "sale-2"}, {ID: "sale-1"}}

	m.storage.EXPECT().GetCampaignByID(gomock.Any(), testCampaign.ID).Return(testCampaign, nil)
	m.authz.EXPECT().Check(gomock.Any(), testAlice, authorization.CAN_VIEW_PERMISSION, "acme").Return(nil)
	m.storage.EXPECT().ListSalesByCampaignID(gomock.Any(), testCampaign.ID, uint64(10), uint64(10)).Return(expected, nil)

	sales, err := svc.ListSales(context.Background(), testAlice, testCampaign.ID, 10, 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(sales) != 2 || sales[0].ID != "sale-2" {
		t.Fatalf("unexpected sales %+v", sales)
	}
}
