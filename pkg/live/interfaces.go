// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package live

import (
	"context"

	"github.com/canonical/sales-leaderboard/internal/live"
)

// HubInterface is the subscriber side of the live hub.
type HubInterface interface {
	Subscribe(ctx context.Context, companyID, campaignID string) (*live.Subscription, error)
}
