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

func (s *Storage) AddParticipant(ctx context.Context, campaignID, userID string) (*types.Participant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddParticipant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate participant ID: %w", err)
	}

	p := types.Participant{
		ID:         id.String(),
		CampaignID: campaignID,
		UserID:     userID,
		JoinedAt:   s.now(),
	}

	_, err = s.db.Statement(ctx).
		Insert("campaign_participants").
		Columns("id", "campaign_id", "user_id", "joined_at").
		Values(p.ID, p.CampaignID, p.UserID, p.JoinedAt).
		ExecContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to add participant")
	}

	return &p, nil
}

func (s *Storage) RemoveParticipant(ctx context.Context, campaignID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RemoveParticipant")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("campaign_participants").
		Where(sq.Eq{"campaign_id": campaignID, "user_id": userID}).
		ExecContext(ctx)

	if err != nil {
		return wrapError(err, "failed to remove participant")
	}

	return expectRows(res)
}

func (s *Storage) ListParticipants(ctx context.Context, campaignID string) ([]*types.Participant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListParticipants")
	defer span.End()

	columns := append([]string{"p.id", "p.campaign_id", "p.user_id", "p.joined_at"}, prefixed("u", userColumns)...)

	rows, err := s.db.Statement(ctx).
		Select(columns...).
		From("campaign_participants p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"p.campaign_id": campaignID}).
		OrderBy("p.joined_at ASC", "p.id ASC").
		QueryContext(ctx)

	if err != nil {
		return nil, wrapError(err, "failed to list participants")
	}
	defer rows.Close()

	participants := make([]*types.Participant, 0)
	for rows.Next() {
		var p types.Participant

		u, err := scanUser(participantRow{rows: rows, p: &p})
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}

		p.User = u
		participants = append(participants, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return participants, nil
}

// participantRow prepends the participant columns to a user scan
type participantRow struct {
	rows rowScanner
	p    *types.Participant
}

func (r participantRow) Scan(dest ...interface{}) error {
	return r.rows.Scan(append([]interface{}{&r.p.ID, &r.p.CampaignID, &r.p.UserID, &r.p.JoinedAt}, dest...)...)
}

func (s *Storage) IsParticipant(ctx context.Context, campaignID, userID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.IsParticipant")
	defer span.End()

	var n int
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("campaign_participants").
		Where(sq.Eq{"campaign_id": campaignID, "user_id": userID}).
		QueryRowContext(ctx).
		Scan(&n)

	if err != nil {
		return false, wrapError(err, "failed to check participant")
	}

	return n > 0, nil
}
