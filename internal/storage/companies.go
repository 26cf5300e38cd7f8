// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/sales-leaderboard/internal/types"
)

var companyColumns = []string{"id", "name", "logo_url", "primary_color", "secondary_color", "created_at", "updated_at"}

func (s *Storage) CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCompany")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate company ID: %w", err)
	}

	company := *c
	company.ID = id.String()
	company.CreatedAt = s.now()
	company.UpdatedAt = company.CreatedAt

	if company.PrimaryColor == "" {
		company.PrimaryColor = types.DefaultPrimaryColor
	}
	if company.SecondaryColor == "" {
		company.SecondaryColor = types.DefaultSecondaryColor
	}

	_, err = s.db.Statement(ctx).
		Insert("companies").
		Columns(companyColumns...).
		Values(company.ID, company.Name, company.LogoURL, company.PrimaryColor, company.SecondaryColor, company.CreatedAt, company.UpdatedAt).
		ExecContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to insert company")
	}

	return &company, nil
}

func (s *Storage) GetCompanyByID(ctx context.Context, id string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCompanyByID")
	defer span.End()

	var c types.Company
	err := s.db.Statement(ctx).
		Select(companyColumns...).
		From("companies").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&c.ID, &c.Name, &c.LogoURL, &c.PrimaryColor, &c.SecondaryColor, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return nil, wrapError(err, "failed to get company")
	}

	return &c, nil
}

// UpdateCompany updates the fields named in paths, PATCH style
func (s *Storage) UpdateCompany(ctx context.Context, c *types.Company, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateCompany")
	defer span.End()

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = c.Name
		case "logo_url":
			updateMap["logo_url"] = c.LogoURL
		case "primary_color":
			updateMap["primary_color"] = c.PrimaryColor
		case "secondary_color":
			updateMap["secondary_color"] = c.SecondaryColor
		}
	}

	if len(updateMap) == 0 {
		return nil
	}

	updateMap["updated_at"] = s.now()

	res, err := s.db.Statement(ctx).
		Update("companies").
		SetMap(updateMap).
		Where(sq.Eq{"id": c.ID}).
		ExecContext(ctx)

	if err != nil {
		return wrapError(err, "failed to update company")
	}

	return expectRows(res)
}
