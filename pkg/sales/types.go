// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sales

import (
	"time"

	"github.com/canonical/sales-leaderboard/internal/types"
)

// RecordSaleRequest is the body of POST /api/v0/sales. SellerID defaults to the caller.
type RecordSaleRequest struct {
	CampaignID         string              `json:"campaign_id" validate:"required"`
	SellerID           string              `json:"seller_id" validate:"required"`
	Amount             types.DecimalString `json:"amount" validate:"required,decimal_positive"`
	CustomerName       string              `json:"customer_name" validate:"required,max=255"`
	ProductDescription string              `json:"product_description" validate:"required,max=1000"`
	Notes              string              `json:"notes" validate:"max=2000"`
	SaleDate           *time.Time          `json:"sale_date,omitempty"`
}
