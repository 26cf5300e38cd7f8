// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/canonical/sales-leaderboard/internal/types"
)

var campaignColumns = []string{
	"id", "company_id", "name", "description", "prize_emoji", "prize_image_url", "prize_description",
	"start_date", "end_date", "target_amount", "is_active", "created_at", "updated_at",
}

func prefixed(prefix string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = prefix + "." + c
	}
	return out
}

func scanCampaign(row rowScanner) (*types.Campaign, error) {
	var (
		c      types.Campaign
		target decimal.NullDecimal
	)

	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.PrizeEmoji, &c.PrizeImageURL, &c.PrizeDescription,
		&c.StartDate, &c.EndDate, &target, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if target.Valid {
		a := types.NewAmount(target.Decimal)
		c.TargetAmount = &a
	}

	return &c, nil
}

func targetValue(a *types.Amount) decimal.NullDecimal {
	if a == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: a.Decimal, Valid: true}
}

func (s *Storage) CreateCampaign(ctx context.Context, c *types.Campaign) (*types.Campaign, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCampaign")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate campaign ID: %w", err)
	}

	campaign := *c
	campaign.ID = id.String()
	campaign.StartDate = campaign.StartDate.UTC()
	campaign.EndDate = campaign.EndDate.UTC()
	campaign.CreatedAt = s.now()
	campaign.UpdatedAt = campaign.CreatedAt

	if campaign.PrizeEmoji == "" {
		campaign.PrizeEmoji = types.DefaultPrizeEmoji
	}

	_, err = s.db.Statement(ctx).
		Insert("campaigns").
		Columns(campaignColumns...).
		Values(
			campaign.ID, campaign.CompanyID, campaign.Name, campaign.Description, campaign.PrizeEmoji,
			campaign.PrizeImageURL, campaign.PrizeDescription, campaign.StartDate, campaign.EndDate,
			targetValue(campaign.TargetAmount), campaign.IsActive, campaign.CreatedAt, campaign.UpdatedAt,
		).
		ExecContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to insert campaign")
	}

	return &campaign, nil
}

func (s *Storage) GetCampaignByID(ctx context.Context, id string) (*types.Campaign, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCampaignByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(campaignColumns...).
		From("campaigns").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	c, err := scanCampaign(row)
	if err != nil {
		return nil, wrapError(err, "failed to get campaign")
	}

	return c, nil
}

func (s *Storage) ListCampaignsByCompanyID(ctx context.Context, companyID string) ([]*types.Campaign, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCampaignsByCompanyID")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(campaignColumns...).
		From("campaigns").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("created_at DESC", "id DESC")

	return s.listCampaigns(ctx, query)
}

// ListCampaignsByParticipant returns the campaigns the user takes part in
func (s *Storage) ListCampaignsByParticipant(ctx context.Context, userID string) ([]*types.Campaign, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCampaignsByParticipant")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(prefixed("c", campaignColumns)...).
		From("campaigns c").
		Join("campaign_participants p ON p.campaign_id = c.id").
		Where(sq.Eq{"p.user_id": userID}).
		OrderBy("c.created_at DESC", "c.id DESC")

	return s.listCampaigns(ctx, query)
}

func (s *Storage) listCampaigns(ctx context.Context, query sq.SelectBuilder) ([]*types.Campaign, error) {
	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, wrapError(err, "failed to list campaigns")
	}
	defer rows.Close()

	campaigns := make([]*types.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return campaigns, nil
}

// UpdateCampaign updates the fields named in paths, PATCH style
func (s *Storage) UpdateCampaign(ctx context.Context, c *types.Campaign, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateCampaign")
	defer span.End()

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = c.Name
		case "description":
			updateMap["description"] = c.Description
		case "prize_emoji":
			updateMap["prize_emoji"] = c.PrizeEmoji
		case "prize_image_url":
			updateMap["prize_image_url"] = c.PrizeImageURL
		case "prize_description":
			updateMap["prize_description"] = c.PrizeDescription
		case "start_date":
			updateMap["start_date"] = c.StartDate.UTC()
		case "end_date":
			updateMap["end_date"] = c.EndDate.UTC()
		case "target_amount":
			updateMap["target_amount"] = targetValue(c.TargetAmount)
		case "is_active":
			updateMap["is_active"] = c.IsActive
		}
	}

	if len(updateMap) == 0 {
		return nil
	}

	updateMap["updated_at"] = s.now()

	res, err := s.db.Statement(ctx).
		Update("campaigns").
		SetMap(updateMap).
		Where(sq.Eq{"id": c.ID}).
		ExecContext(ctx)

	if err != nil {
		return wrapError(err, "failed to update campaign")
	}

	return expectRows(res)
}
