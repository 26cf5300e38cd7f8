// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package campaigns

import (
	"time"

	"github.com/canonical/sales-leaderboard/internal/types"
)

// CampaignView adds the read time running state to a stored campaign
type CampaignView struct {
	*types.Campaign
	Running bool `json:"running"`
}

type CreateCampaignRequest struct {
	Name             string              `json:"name" validate:"required,max=255"`
	Description      string              `json:"description" validate:"max=2000"`
	PrizeEmoji       string              `json:"prize_emoji" validate:"max=32"`
	PrizeImageURL    string              `json:"prize_image_url" validate:"omitempty,url"`
	PrizeDescription string              `json:"prize_description" validate:"max=1000"`
	StartDate        *time.Time          `json:"start_date" validate:"required"`
	EndDate          *time.Time          `json:"end_date" validate:"required"`
	TargetAmount     types.DecimalString `json:"target_amount"`
	IsActive         *bool               `json:"is_active"`
}

// UpdateCampaignRequest changes only the fields present in the body. An empty
// target_amount clears the target.
type UpdateCampaignRequest struct {
	Name             *string              `json:"name" validate:"omitnil,min=1,max=255"`
	Description      *string              `json:"description" validate:"omitempty,max=2000"`
	PrizeEmoji       *string              `json:"prize_emoji" validate:"omitempty,max=32"`
	PrizeImageURL    *string              `json:"prize_image_url" validate:"omitempty,url"`
	PrizeDescription *string              `json:"prize_description" validate:"omitempty,max=1000"`
	StartDate        *time.Time           `json:"start_date"`
	EndDate          *time.Time           `json:"end_date"`
	TargetAmount     *types.DecimalString `json:"target_amount"`
	IsActive         *bool                `json:"is_active"`
}

type AddParticipantRequest struct {
	UserID string `json:"user_id" validate:"required"`
}
