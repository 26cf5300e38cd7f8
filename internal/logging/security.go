// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

const (
	securityEventKey = "event"
	appName          = "sales-leaderboard"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

// SecurityLogger emits OWASP style event names, e.g. authz_fail:user-1,campaigns
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Warn("system started", zap.String(securityEventKey, "sys_startup:"+appName))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Warn("system shutting down", zap.String(securityEventKey, "sys_shutdown:"+appName))
}

func (s *SecurityLogger) AuthnFailure(reason string) {
	s.l.Warn("authentication failed", zap.String(securityEventKey, "authn_login_fail"), zap.String("reason", reason))
}

func (s *SecurityLogger) AuthzFailure(userID, resource string) {
	s.l.Warn("authorization failed", zap.String(securityEventKey, "authz_fail:"+userID+","+resource))
}

func (s *SecurityLogger) AdminAction(userID, action, resource string) {
	s.l.Info("admin action", zap.String(securityEventKey, "authz_admin:"+userID+","+action+","+resource))
}
