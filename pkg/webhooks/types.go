// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

// RegistrationIdentity is the identity payload the identity provider posts after sign up
type RegistrationIdentity struct {
	ID     string             `json:"id" validate:"required,max=255"`
	Traits RegistrationTraits `json:"traits"`
}

type RegistrationTraits struct {
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	FirstName string `json:"first_name" validate:"max=255"`
	LastName  string `json:"last_name" validate:"max=255"`
	Picture   string `json:"picture" validate:"omitempty,url"`
}
