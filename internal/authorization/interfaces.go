// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/sales-leaderboard/internal/types"
)

type AuthorizerInterface interface {
	Check(context.Context, *types.User, string, string) error
	CanRecordSale(context.Context, *types.User, *types.Campaign, string) error
	CanDeleteSale(context.Context, *types.User, *types.Campaign, *types.Sale) error
}
