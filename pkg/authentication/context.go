// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/sales-leaderboard/internal/types"
)

// Define a private custom type to avoid collisions
type contextKey int

const (
	userContextKey contextKey = iota
	actorContextKey
)

// WithUserID returns a new context with the given user ID derived from the parent context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

// GetUserID retrieves the user ID from the context.
// Returns an empty string and false if the user ID is not present.
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userContextKey).(string)
	return id, ok
}

// WithActor stores the registered user behind the verified token
func WithActor(ctx context.Context, actor *types.User) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// GetActor returns nil when the authenticated subject has no user row yet
func GetActor(ctx context.Context) *types.User {
	actor, _ := ctx.Value(actorContextKey).(*types.User)
	return actor
}
