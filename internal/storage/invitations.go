// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/sales-leaderboard/internal/types"
)

var invitationColumns = []string{"id", "email", "company_id", "role", "token", "expires_at", "used_at", "created_at", "created_by"}

func scanInvitation(row rowScanner) (*types.Invitation, error) {
	var (
		i      types.Invitation
		usedAt sql.NullTime
	)

	if err := row.Scan(&i.ID, &i.Email, &i.CompanyID, &i.Role, &i.Token, &i.ExpiresAt, &usedAt, &i.CreatedAt, &i.CreatedBy); err != nil {
		return nil, err
	}

	if usedAt.Valid {
		i.UsedAt = &usedAt.Time
	}

	return &i, nil
}

func (s *Storage) CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvitation")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation ID: %w", err)
	}

	inv := *i
	inv.ID = id.String()
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.UsedAt = nil
	inv.CreatedAt = s.now()

	_, err = s.db.Statement(ctx).
		Insert("invitations").
		Columns("id", "email", "company_id", "role", "token", "expires_at", "created_at", "created_by").
		Values(inv.ID, inv.Email, inv.CompanyID, inv.Role, inv.Token, inv.ExpiresAt, inv.CreatedAt, inv.CreatedBy).
		ExecContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to insert invitation")
	}

	return &inv, nil
}

func (s *Storage) GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitationByToken")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"token": token}).
		QueryRowContext(ctx)

	i, err := scanInvitation(row)
	if err != nil {
		return nil, wrapError(err, "failed to get invitation")
	}

	return i, nil
}

func (s *Storage) ListInvitationsByCompanyID(ctx context.Context, companyID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvitationsByCompanyID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("created_at DESC", "id DESC").
		QueryContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to list invitations")
	}
	defer rows.Close()

	invitations := make([]*types.Invitation, 0)
	for rows.Next() {
		i, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// MarkInvitationUsed consumes the invitation once, ErrNotFound when it was
// already used or does not exist
func (s *Storage) MarkInvitationUsed(ctx context.Context, id string, usedAt time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.MarkInvitationUsed")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("invitations").
		Set("used_at", usedAt.UTC()).
		Where(sq.Eq{"id": id, "used_at": nil}).
		ExecContext(ctx)

	if err != nil {
		return wrapError(err, "failed to mark invitation used")
	}

	return expectRows(res)
}

// DeleteExpiredInvitations purges unused invitations that expired before the cutoff
func (s *Storage) DeleteExpiredInvitations(ctx context.Context, before time.Time) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteExpiredInvitations")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("invitations").
		Where(sq.Eq{"used_at": nil}).
		Where(sq.Lt{"expires_at": before.UTC()}).
		ExecContext(ctx)

	if err != nil {
		return 0, wrapError(err, "failed to delete expired invitations")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return n, nil
}
