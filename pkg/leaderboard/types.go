// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package leaderboard

import "github.com/canonical/sales-leaderboard/internal/types"

// Leaderboard is the ranking of a campaign. Campaign is nil and Entries empty
// when the campaign is unknown to the caller's company.
type Leaderboard struct {
	CampaignID  string                    `json:"campaign_id"`
	Campaign    *types.Campaign           `json:"campaign,omitempty"`
	Running     bool                      `json:"running"`
	TotalAmount types.Amount              `json:"total_amount"`
	Entries     []*types.LeaderboardEntry `json:"entries"`
}
