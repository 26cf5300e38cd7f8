// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/pkg/authentication"
)

func TestAPI(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		body           string
		actor          *types.User
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name:   "create company for unregistered identity",
			method: http.MethodPost,
			target: "/companies",
			body:   `{"name":"Acme"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().CreateCompany(gomock.Any(), "newbie", nil, &CreateCompanyRequest{Name: "Acme"}).Return(&types.Company{ID: "acme"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "create company twice",
			method: http.MethodPost,
			target: "/companies",
			body:   `{"name":"Acme"}`,
			actor:  testAdmin,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().CreateCompany(gomock.Any(), "newbie", testAdmin, gomock.Any()).Return(nil, fmt.Errorf("%w: member", storage.ErrDuplicateKey))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "get other company",
			method: http.MethodGet,
			target: "/companies/globex",
			actor:  testAdmin,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().GetCompany(gomock.Any(), testAdmin, "globex").Return(nil, authorization.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "update company",
			method: http.MethodPut,
			target: "/companies/acme",
			body:   `{"primary_color":"#000000"}`,
			actor:  testAdmin,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().UpdateCompany(gomock.Any(), testAdmin, "acme", gomock.Any()).Return(&types.Company{ID: "acme"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "me unregistered",
			method: http.MethodGet,
			target: "/me",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().Me(gomock.Any(), nil).Return(nil, fmt.Errorf("%w: user", storage.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "sellers",
			method: http.MethodGet,
			target: "/sellers",
			actor:  testAlice,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().ListSellers(gomock.Any(), testAlice).Return([]*types.User{testAlice}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "update user with bad body",
			method: http.MethodPatch,
			target: "/users/alice",
			body:   `{"role":`,
			actor:  testAdmin,
			setupMocks: func(_ *MockServiceInterface, logger *MockLoggerInterface) {
				logger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "update user",
			method: http.MethodPatch,
			target: "/users/alice",
			body:   `{"role":"admin"}`,
			actor:  testAdmin,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().UpdateUser(gomock.Any(), testAdmin, "alice", gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *types.User, id string, req *UpdateUserRequest) (*types.User, error) {
						if req.Role == nil || *req.Role != types.RoleAdmin {
							t.Errorf("expected role admin, got %v", req.Role)
						}
						return &types.User{ID: id, Role: types.RoleAdmin}, nil
					},
				)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tt.setupMocks(mockService, mockLogger)

			req := httptest.NewRequest(tt.method, tt.target, bytes.NewBufferString(tt.body))
			ctx := authentication.WithUserID(req.Context(), "newbie")
			if tt.actor != nil {
				ctx = authentication.WithActor(ctx, tt.actor)
			}
			req = req.WithContext(ctx)
			w := httptest.NewRecorder()

			mux := chi.NewMux()
			NewAPI(mockService, mockLogger).RegisterEndpoints(mux)
			mux.ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}
		})
	}
}
