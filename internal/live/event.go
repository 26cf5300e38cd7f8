// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package live

import (
	"time"

	"github.com/canonical/sales-leaderboard/internal/types"
)

type EventType string

const EventNewSale EventType = "NEW_SALE"

type Event struct {
	Type EventType `json:"type"`
	Data SaleEvent `json:"data"`
}

type SaleEvent struct {
	SaleID       string    `json:"sale_id"`
	CampaignID   string    `json:"campaign_id"`
	SellerID     string    `json:"seller_id"`
	SellerName   string    `json:"seller_name"`
	Amount       string    `json:"amount"`
	CustomerName string    `json:"customer_name,omitempty"`
	SaleDate     time.Time `json:"sale_date"`
}

func NewSaleEvent(sale *types.Sale, sellerName string) *Event {
	return &Event{
		Type: EventNewSale,
		Data: SaleEvent{
			SaleID:       sale.ID,
			CampaignID:   sale.CampaignID,
			SellerID:     sale.SellerID,
			SellerName:   sellerName,
			Amount:       sale.Amount.String(),
			CustomerName: sale.CustomerName,
			SaleDate:     sale.SaleDate,
		},
	}
}
