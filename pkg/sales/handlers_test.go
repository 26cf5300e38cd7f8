// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sales

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	httptypes "github.com/canonical/sales-leaderboard/internal/http/types"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/internal/validation"
	"github.com/canonical/sales-leaderboard/pkg/authentication"
)

func serve(t *testing.T, api *API, method, target, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req = req.WithContext(authentication.WithActor(req.Context(), testAdmin))
	w := httptest.NewRecorder()

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)
	mux.ServeHTTP(w, req)

	return w.Result()
}

func TestAPI_RecordSale(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
		expectedFields int
	}{
		{
			name: "created",
			body: `{"campaign_id":"campaign-1","seller_id":"alice","amount":100.5,"customer_name":"X","product_description":"Y"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().RecordSale(gomock.Any(), testAdmin, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *types.User, req *RecordSaleRequest) (*types.Sale, error) {
						if req.Amount != "100.5" {
							t.Errorf("expected numeric amount to be kept as text, got %q", req.Amount)
						}
						return &types.Sale{ID: "sale-1", Amount: types.MustAmount("100.5")}, nil
					},
				)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "malformed body",
			body: `{"amount":`,
			setupMocks: func(_ *MockServiceInterface, logger *MockLoggerInterface) {
				logger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "validation",
			body: `{"campaign_id":"campaign-1","amount":"abc"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				vErr := validation.NewError("amount", "must be a positive amount with at most 2 decimals")
				vErr.Add("customer_name", "is required")
				svc.EXPECT().RecordSale(gomock.Any(), testAdmin, gomock.Any()).Return(nil, vErr)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedFields: 2,
		},
		{
			name: "forbidden",
			body: `{"campaign_id":"campaign-1","amount":"1"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().RecordSale(gomock.Any(), testAdmin, gomock.Any()).Return(nil, authorization.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "data store down",
			body: `{"campaign_id":"campaign-1","amount":"1"}`,
			setupMocks: func(svc *MockServiceInterface, logger *MockLoggerInterface) {
				svc.EXPECT().RecordSale(gomock.Any(), testAdmin, gomock.Any()).Return(nil, fmt.Errorf("%w: dial", storage.ErrUnavailable))
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tt.setupMocks(mockService, mockLogger)

			res := serve(t, NewAPI(mockService, mockLogger), http.MethodPost, "/sales", tt.body)
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}

			if tt.expectedFields > 0 {
				var body httptypes.ErrorResponse
				if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if len(body.Errors) != tt.expectedFields {
					t.Fatalf("expected %d field errors, got %+v", tt.expectedFields, body.Errors)
				}
			}
		})
	}
}

func TestAPI_DeleteSale(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "deleted", expectedStatus: http.StatusNoContent},
		{name: "not found", err: fmt.Errorf("%w: sale", storage.ErrNotFound), expectedStatus: http.StatusNotFound},
		{name: "forbidden", err: authorization.ErrForbidden, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockService.EXPECT().DeleteSale(gomock.Any(), testAdmin, "sale-1").Return(tt.err)

			res := serve(t, NewAPI(mockService, NewMockLoggerInterface(ctrl)), http.MethodDelete, "/sales/sale-1", "")
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, res.StatusCode)
			}
		})
	}
}

func TestAPI_ListSales(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockServiceInterface(ctrl)
	mockService.EXPECT().ListSales(gomock.Any(), testAdmin, "campaign-1", uint64(20), uint64(10)).Return([]*types.Sale{{ID: "sale-1"}}, nil)

	api := NewAPI(mockService, NewMockLoggerInterface(ctrl))

	res := serve(t, api, http.MethodGet, "/campaigns/campaign-1/sales?page=3&size=10", "")
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}

	res = serve(t, api, http.MethodGet, "/campaigns/campaign-1/sales?page=abc", "")
	defer res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", res.StatusCode)
	}
}
