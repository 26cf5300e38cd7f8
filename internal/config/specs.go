// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	LogFile  string `envconfig:"log_file"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	AllowedOrigins []string `envconfig:"allowed_origins" default:"*"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	AuthenticationEnabled       bool   `envconfig:"authentication_enabled" default:"false"`
	AuthenticationIssuer        string `envconfig:"authentication_issuer"`
	AuthenticationJWKSURL       string `envconfig:"authentication_jwks_url"`
	AuthenticationRequiredScope string `envconfig:"authentication_required_scope"`

	InvitationLifetime time.Duration `envconfig:"invitation_lifetime" default:"168h"`

	LiveBufferSize int `envconfig:"live_buffer_size" default:"16"`
}
