// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"testing"

	"github.com/canonical/sales-leaderboard/internal/logging"
	"github.com/canonical/sales-leaderboard/internal/monitoring"
	"github.com/canonical/sales-leaderboard/internal/tracing"
)

func TestNewProviderWithJWKSRejectsInvalidURL(t *testing.T) {
	for _, jwksURL := range []string{"", "keys.json", "ftp://idp.example.com/keys", "https://"} {
		if _, err := NewProviderWithJWKS(context.Background(), "https://idp.example.com", jwksURL); err == nil {
			t.Errorf("expected %q to be rejected", jwksURL)
		}
	}
}

func TestNewJWTAuthenticator(t *testing.T) {
	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	if _, err := NewJWTAuthenticator(context.Background(), Config{}, tracer, monitor, logger); err == nil {
		t.Fatal("expected an issuer to be required")
	}

	// the key set is fetched lazily, no identity provider is contacted here
	cfg := Config{
		Issuer:        "https://idp.example.com",
		JWKSURL:       "https://idp.example.com/.well-known/jwks.json",
		RequiredScope: "leaderboard",
	}

	v, err := NewJWTAuthenticator(context.Background(), cfg, tracer, monitor, logger)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := v.(*JWTVerifier); !ok {
		t.Fatalf("expected a JWT verifier, got %T", v)
	}
}
