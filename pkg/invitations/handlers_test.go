// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/sales-leaderboard/internal/authorization"
	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/pkg/authentication"
)

func TestAPI(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		body           string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name:   "create",
			method: http.MethodPost,
			target: "/invitations",
			body:   `{"email":"new@acme.test","role":"seller"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().CreateInvitation(gomock.Any(), testAdmin, &CreateInvitationRequest{Email: "new@acme.test", Role: types.RoleSeller}).Return(testInvitation(), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "create malformed",
			method: http.MethodPost,
			target: "/invitations",
			body:   `[`,
			setupMocks: func(_ *MockServiceInterface, logger *MockLoggerInterface) {
				logger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "list forbidden",
			method: http.MethodGet,
			target: "/invitations",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().ListInvitations(gomock.Any(), testAdmin).Return(nil, authorization.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "inspect unknown",
			method: http.MethodGet,
			target: "/invitations/nope",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().GetInvitation(gomock.Any(), "nope").Return(nil, ErrInvitationNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "inspect expired",
			method: http.MethodGet,
			target: "/invitations/tok",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().GetInvitation(gomock.Any(), "tok").Return(nil, ErrInvitationExpired)
			},
			expectedStatus: http.StatusGone,
		},
		{
			name:   "accept",
			method: http.MethodPost,
			target: "/invitations/tok/accept",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().AcceptInvitation(gomock.Any(), "admin-1", testAdmin, "tok").Return(testAdmin, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "accept twice",
			method: http.MethodPost,
			target: "/invitations/tok/accept",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().AcceptInvitation(gomock.Any(), "admin-1", testAdmin, "tok").Return(nil, ErrInvitationUsed)
			},
			expectedStatus: http.StatusGone,
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
			ctx := authentication.WithUserID(req.Context(), testAdmin.ID)
			req = req.WithContext(authentication.WithActor(ctx, testAdmin))
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
