// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/canonical/sales-leaderboard/internal/types"
)

// GetLeaderboard aggregates the sales of a campaign per seller.
// Only sellers with at least one sale appear, ordered by total descending and
// seller id ascending on ties. A campaign outside the company yields no rows.
func (s *Storage) GetLeaderboard(ctx context.Context, companyID, campaignID string) ([]*types.LeaderboardEntry, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetLeaderboard")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(
			"s.seller_id",
			"u.email",
			"u.first_name",
			"u.last_name",
			"u.profile_image_url",
			"SUM(s.amount) AS total_amount",
			"COUNT(s.id) AS sales_count",
		).
		From("sales s").
		Join("users u ON u.id = s.seller_id").
		Join("campaigns c ON c.id = s.campaign_id").
		Where(sq.Eq{"s.campaign_id": campaignID, "c.company_id": companyID}).
		GroupBy("s.seller_id", "u.email", "u.first_name", "u.last_name", "u.profile_image_url").
		OrderBy("total_amount DESC", "s.seller_id ASC").
		QueryContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to compute leaderboard")
	}
	defer rows.Close()

	entries := make([]*types.LeaderboardEntry, 0)
	for rows.Next() {
		var (
			e     types.LeaderboardEntry
			email sql.NullString
			total decimal.Decimal
		)

		if err := rows.Scan(&e.SellerID, &email, &e.FirstName, &e.LastName, &e.ProfileImageURL, &total, &e.SalesCount); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}

		e.Rank = len(entries) + 1
		e.TotalAmount = types.NewAmount(total)
		e.SellerName = types.DisplayName(e.SellerID, email.String, e.FirstName, e.LastName)
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}
