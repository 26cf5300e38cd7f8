// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"errors"
	"time"

	"github.com/canonical/sales-leaderboard/internal/types"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationUsed     = errors.New("invitation already used")
	ErrInvitationExpired  = errors.New("invitation expired")
)

type CreateInvitationRequest struct {
	Email string     `json:"email" validate:"required,email,max=255"`
	Role  types.Role `json:"role" validate:"required,oneof=admin seller"`
}

// InvitationView is what an invitee may learn about an invitation before accepting it
type InvitationView struct {
	Email       string     `json:"email"`
	CompanyID   string     `json:"company_id"`
	CompanyName string     `json:"company_name"`
	Role        types.Role `json:"role"`
	ExpiresAt   time.Time  `json:"expires_at"`
}
