// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/sales-leaderboard/internal/types"
)

var userColumns = []string{"id", "email", "first_name", "last_name", "profile_image_url", "role", "company_id", "is_active", "created_at", "updated_at"}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*types.User, error) {
	var (
		u         types.User
		email     sql.NullString
		companyID sql.NullString
	)

	if err := row.Scan(&u.ID, &email, &u.FirstName, &u.LastName, &u.ProfileImageURL, &u.Role, &companyID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}

	u.Email = email.String
	u.CompanyID = companyID.String

	return &u, nil
}

// UpsertUser creates the user or refreshes its profile fields, role and
// company are left untouched on conflict
func (s *Storage) UpsertUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertUser")
	defer span.End()

	if u.ID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	role := u.Role
	if role == "" {
		role = types.RoleSeller
	}

	now := s.now()

	row := s.db.Statement(ctx).
		Insert("users").
		Columns(userColumns...).
		Values(u.ID, nullString(u.Email), u.FirstName, u.LastName, u.ProfileImageURL, role, nullString(u.CompanyID), true, now, now).
		Suffix(
			"ON CONFLICT (id) DO UPDATE SET "+
				"email = COALESCE(excluded.email, users.email), "+
				"first_name = excluded.first_name, "+
				"last_name = excluded.last_name, "+
				"profile_image_url = excluded.profile_image_url, "+
				"updated_at = excluded.updated_at "+
				"RETURNING "+strings.Join(userColumns, ", "),
		).
		QueryRowContext(ctx)

	user, err := scanUser(row)
	if err != nil {
		return nil, wrapError(err, "failed to upsert user")
	}

	return user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	u, err := scanUser(row)
	if err != nil {
		return nil, wrapError(err, "failed to get user")
	}

	return u, nil
}

func (s *Storage) ListUsersByCompanyID(ctx context.Context, companyID string) ([]*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListUsersByCompanyID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("first_name ASC", "last_name ASC", "id ASC").
		QueryContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to list users")
	}
	defer rows.Close()

	users := make([]*types.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

// UpdateUser updates the fields named in paths: role, is_active, company_id
func (s *Storage) UpdateUser(ctx context.Context, u *types.User, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateUser")
	defer span.End()

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "role":
			updateMap["role"] = u.Role
		case "is_active":
			updateMap["is_active"] = u.IsActive
		case "company_id":
			updateMap["company_id"] = nullString(u.CompanyID)
		}
	}

	if len(updateMap) == 0 {
		return nil
	}

	updateMap["updated_at"] = s.now()

	res, err := s.db.Statement(ctx).
		Update("users").
		SetMap(updateMap).
		Where(sq.Eq{"id": u.ID}).
		ExecContext(ctx)

	if err != nil {
		return wrapError(err, "failed to update user")
	}

	return expectRows(res)
}

func expectRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}
