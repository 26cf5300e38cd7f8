// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/canonical/sales-leaderboard/internal/types"
)

var saleColumns = []string{
	"id", "campaign_id", "seller_id", "amount", "customer_name", "product_description", "notes",
	"sale_date", "created_at", "created_by",
}

func (s *Storage) CreateSale(ctx context.Context, sale *types.Sale) (*types.Sale, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateSale")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate sale ID: %w", err)
	}

	n := *sale
	n.ID = id.String()
	n.Amount = types.NewAmount(n.Amount.Decimal)
	n.CreatedAt = s.now()

	if n.SaleDate.IsZero() {
		n.SaleDate = n.CreatedAt
	}
	n.SaleDate = n.SaleDate.UTC()

	_, err = s.db.Statement(ctx).
		Insert("sales").
		Columns(saleColumns...).
		Values(
			n.ID, n.CampaignID, n.SellerID, n.Amount.Decimal, n.CustomerName, n.ProductDescription, n.Notes,
			n.SaleDate, n.CreatedAt, n.CreatedBy,
		).
		ExecContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to insert sale")
	}

	return &n, nil
}

func (s *Storage) GetSaleByID(ctx context.Context, id string) (*types.Sale, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSaleByID")
	defer span.End()

	rows, err := s.salesQuery(ctx).
		Where(sq.Eq{"s.id": id}).
		QueryContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to get sale")
	}

	sales, err := scanSales(rows)
	if err != nil {
		return nil, err
	}

	if len(sales) == 0 {
		return nil, ErrNotFound
	}

	return sales[0], nil
}

// ListSalesByCampaignID lists the campaign sales, newest sale date first
func (s *Storage) ListSalesByCampaignID(ctx context.Context, campaignID string, offset, limit uint64) ([]*types.Sale, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListSalesByCampaignID")
	defer span.End()

	rows, err := s.salesQuery(ctx).
		Where(sq.Eq{"s.campaign_id": campaignID}).
		OrderBy("s.sale_date DESC", "s.id DESC").
		Offset(offset).
		Limit(limit).
		QueryContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to list sales")
	}

	return scanSales(rows)
}

// DeleteSale removes the sale, ErrNotFound when no row matched
func (s *Storage) DeleteSale(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteSale")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("sales").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return wrapError(err, "failed to delete sale")
	}

	return expectRows(res)
}

func (s *Storage) salesQuery(ctx context.Context) sq.SelectBuilder {
	columns := append(prefixed("s", saleColumns), "u.email", "u.first_name", "u.last_name")

	return s.db.Statement(ctx).
		Select(columns...).
		From("sales s").
		LeftJoin("users u ON u.id = s.seller_id")
}

func scanSales(rows *sql.Rows) ([]*types.Sale, error) {
	defer rows.Close()

	sales := make([]*types.Sale, 0)
	for rows.Next() {
		var (
			sale      types.Sale
			amount    decimal.Decimal
			email     sql.NullString
			firstName sql.NullString
			lastName  sql.NullString
		)

		err := rows.Scan(
			&sale.ID, &sale.CampaignID, &sale.SellerID, &amount, &sale.CustomerName, &sale.ProductDescription, &sale.Notes,
			&sale.SaleDate, &sale.CreatedAt, &sale.CreatedBy, &email, &firstName, &lastName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}

		sale.Amount = types.NewAmount(amount)
		sale.SellerName = types.DisplayName(sale.SellerID, email.String, firstName.String, lastName.String)
		sales = append(sales, &sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sales, nil
}
