// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/sales-leaderboard/internal/storage"
	"github.com/canonical/sales-leaderboard/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_interfaces.go -source=./interfaces.go

func TestMiddleware_Authenticate(t *testing.T) {
	registered := &types.User{ID: "user-123", Role: types.RoleSeller, CompanyID: "acme", IsActive: true}

	tests := []struct {
		name               string
		authHeader         string
		target             string
		upgrade            bool
		setupMocks         func(*gomock.Controller, *MockTokenVerifierInterface, *MockStorageInterface, *MockLoggerInterface)
		expectedStatusCode int
		expectedActor      string
	}{
		{
			name:               "Missing token - rejects request",
			setupMocks:         func(*gomock.Controller, *MockTokenVerifierInterface, *MockStorageInterface, *MockLoggerInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Invalid token format - rejects request",
			authHeader:         "InvalidToken",
			setupMocks:         func(*gomock.Controller, *MockTokenVerifierInterface, *MockStorageInterface, *MockLoggerInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "Token verification fails - rejects request",
			authHeader: "Bearer invalid-token",
			setupMocks: func(ctrl *gomock.Controller, v *MockTokenVerifierInterface, _ *MockStorageInterface, logger *MockLoggerInterface) {
				security := NewMockSecurityLoggerInterface(ctrl)
				v.EXPECT().VerifyToken(gomock.Any(), "invalid-token").Return("", fmt.Errorf("invalid token"))
				logger.EXPECT().Security().Return(security)
				security.EXPECT().AuthnFailure("invalid token")
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "Valid token of a registered user",
			authHeader: "Bearer valid-token",
			setupMocks: func(_ *gomock.Controller, v *MockTokenVerifierInterface, s *MockStorageInterface, _ *MockLoggerInterface) {
				v.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return("user-123", nil)
				s.EXPECT().GetUserByID(gomock.Any(), "user-123").Return(registered, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedActor:      "user-123",
		},
		{
			name:       "Valid token of an unregistered subject",
			authHeader: "Bearer valid-token",
			setupMocks: func(_ *gomock.Controller, v *MockTokenVerifierInterface, s *MockStorageInterface, _ *MockLoggerInterface) {
				v.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return("user-new", nil)
				s.EXPECT().GetUserByID(gomock.Any(), "user-new").Return(nil, fmt.Errorf("%w: no rows", storage.ErrNotFound))
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:       "User lookup unavailable",
			authHeader: "Bearer valid-token",
			setupMocks: func(_ *gomock.Controller, v *MockTokenVerifierInterface, s *MockStorageInterface, logger *MockLoggerInterface) {
				v.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return("user-123", nil)
				s.EXPECT().GetUserByID(gomock.Any(), "user-123").Return(nil, fmt.Errorf("%w: connection refused", storage.ErrUnavailable))
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(1)
			},
			expectedStatusCode: http.StatusServiceUnavailable,
		},
		{
			name:    "WebSocket upgrade with access token",
			target:  "/ws?access_token=valid-token",
			upgrade: true,
			setupMocks: func(_ *gomock.Controller, v *MockTokenVerifierInterface, s *MockStorageInterface, _ *MockLoggerInterface) {
				v.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return("user-123", nil)
				s.EXPECT().GetUserByID(gomock.Any(), "user-123").Return(registered, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectedActor:      "user-123",
		},
		{
			name:               "Access token ignored on plain requests",
			target:             "/test?access_token=valid-token",
			setupMocks:         func(*gomock.Controller, *MockTokenVerifierInterface, *MockStorageInterface, *MockLoggerInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockVerifier := NewMockTokenVerifierInterface(ctrl)
			mockStorage := NewMockStorageInterface(ctrl)
			ctx := context.Background()

			mockTracer.EXPECT().Start(gomock.Any(), "authentication.Middleware.Authenticate").Return(ctx, trace.SpanFromContext(ctx))
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
			tt.setupMocks(ctrl, mockVerifier, mockStorage, mockLogger)

			middleware := NewMiddleware(mockVerifier, mockStorage, mockTracer, mockMonitor, mockLogger)

			var actorID string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if actor := GetActor(r.Context()); actor != nil {
					actorID = actor.ID
				}
				if _, ok := GetUserID(r.Context()); !ok {
					t.Error("expected user ID in context")
				}
				w.WriteHeader(http.StatusOK)
			})

			target := tt.target
			if target == "" {
				target = "/test"
			}

			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.upgrade {
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Upgrade", "websocket")
			}

			rr := httptest.NewRecorder()
			middleware.Authenticate()(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}

			if actorID != tt.expectedActor {
				t.Errorf("expected actor %q, got %q", tt.expectedActor, actorID)
			}
		})
	}
}

func TestMiddleware_GetBearerToken(t *testing.T) {
	tests := []struct {
		name          string
		authHeader    string
		expectedToken string
		expectedFound bool
	}{
		{
			name:          "No Authorization header",
			authHeader:    "",
			expectedToken: "",
			expectedFound: false,
		},
		{
			name:          "Bearer token",
			authHeader:    "Bearer my-token-123",
			expectedToken: "my-token-123",
			expectedFound: true,
		},
		{
			name:          "Raw token without Bearer prefix",
			authHeader:    "my-token-123",
			expectedToken: "",
			expectedFound: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			middleware := NewMiddleware(NewMockTokenVerifierInterface(ctrl), NewMockStorageInterface(ctrl), NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if test.authHeader != "" {
				req.Header.Set("Authorization", test.authHeader)
			}

			token, found := middleware.getBearerToken(req)
			if token != test.expectedToken {
				t.Errorf("expected token %q, got %q", test.expectedToken, token)
			}
			if found != test.expectedFound {
				t.Errorf("expected found %v, got %v", test.expectedFound, found)
			}
		})
	}
}

func TestNoopVerifier(t *testing.T) {
	v := NewNoopVerifier()

	if id, err := v.VerifyToken(context.Background(), " alice "); err != nil || id != "alice" {
		t.Fatalf("expected alice, got %q (%v)", id, err)
	}

	if _, err := v.VerifyToken(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestTokenClaimsHasScope(t *testing.T) {
	tests := []struct {
		claims   tokenClaims
		expected bool
	}{
		{claims: tokenClaims{Scope: "openid leaderboard"}, expected: true},
		{claims: tokenClaims{Scopes: []string{"leaderboard"}}, expected: true},
		{claims: tokenClaims{Scope: "openid"}, expected: false},
		{claims: tokenClaims{}, expected: false},
	}

	for _, tt := range tests {
		if got := tt.claims.hasScope("leaderboard"); got != tt.expected {
			t.Errorf("hasScope(%+v) = %v, expected %v", tt.claims, got, tt.expected)
		}
	}
}
