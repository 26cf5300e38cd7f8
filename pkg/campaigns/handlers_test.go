// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package campaigns

import (
	"bytes"
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

func TestAPI(t *testing.T) {
	view := &CampaignView{Campaign: testCampaign(), Running: true}

	tests := []struct {
		name           string
		method         string
		target         string
		body           string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name:   "list",
			method: http.MethodGet,
			target: "/campaigns",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().ListCampaigns(gomock.Any(), testAdmin).Return([]*CampaignView{view}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "create",
			method: http.MethodPost,
			target: "/campaigns",
			body:   `{"name":"Q4","start_date":"2026-10-01T00:00:00Z","end_date":"2026-12-31T23:59:59Z","target_amount":5000}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().CreateCampaign(gomock.Any(), testAdmin, gomock.Any()).Return(view, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "create with malformed body",
			method: http.MethodPost,
			target: "/campaigns",
			body:   `{"name":`,
			setupMocks: func(_ *MockServiceInterface, logger *MockLoggerInterface) {
				logger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "create rejected",
			method: http.MethodPost,
			target: "/campaigns",
			body:   `{"name":"Q4"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().CreateCampaign(gomock.Any(), testAdmin, gomock.Any()).Return(nil, validation.NewError("start_date", "is required"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:   "get unknown",
			method: http.MethodGet,
			target: "/campaigns/nope",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().GetCampaign(gomock.Any(), testAdmin, "nope").Return(nil, fmt.Errorf("%w: campaign", storage.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "update forbidden",
			method: http.MethodPut,
			target: "/campaigns/c1",
			body:   `{"name":"Renamed"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().UpdateCampaign(gomock.Any(), testAdmin, "c1", gomock.Any()).Return(nil, authorization.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "participants",
			method: http.MethodGet,
			target: "/campaigns/c1/participants",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().ListParticipants(gomock.Any(), testAdmin, "c1").Return([]*types.Participant{{ID: "p1"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "add participant twice",
			method: http.MethodPost,
			target: "/campaigns/c1/participants",
			body:   `{"user_id":"alice"}`,
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().AddParticipant(gomock.Any(), testAdmin, "c1", "alice").Return(nil, fmt.Errorf("%w: participant", storage.ErrDuplicateKey))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "remove participant",
			method: http.MethodDelete,
			target: "/campaigns/c1/participants/alice",
			setupMocks: func(svc *MockServiceInterface, _ *MockLoggerInterface) {
				svc.EXPECT().RemoveParticipant(gomock.Any(), testAdmin, "c1", "alice").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "internal failure is logged",
			method: http.MethodGet,
			target: "/campaigns",
			setupMocks: func(svc *MockServiceInterface, logger *MockLoggerInterface) {
				svc.EXPECT().ListCampaigns(gomock.Any(), testAdmin).Return(nil, fmt.Errorf("boom"))
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tt.setupMocks(mockService, mockLogger)

			res := serve(t, NewAPI(mockService, mockLogger), tt.method, tt.target, tt.body)
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}
		})
	}
}
