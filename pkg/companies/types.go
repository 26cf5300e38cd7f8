// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

import "github.com/canonical/sales-leaderboard/internal/types"

type CreateCompanyRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	LogoURL        string `json:"logo_url" validate:"omitempty,url"`
	PrimaryColor   string `json:"primary_color" validate:"omitempty,hexcolor,len=7"`
	SecondaryColor string `json:"secondary_color" validate:"omitempty,hexcolor,len=7"`
}

type UpdateCompanyRequest struct {
	Name           *string `json:"name" validate:"omitnil,min=1,max=255"`
	LogoURL        *string `json:"logo_url" validate:"omitempty,url"`
	PrimaryColor   *string `json:"primary_color" validate:"omitnil,hexcolor,len=7"`
	SecondaryColor *string `json:"secondary_color" validate:"omitnil,hexcolor,len=7"`
}

type UpdateUserRequest struct {
	Role     *types.Role `json:"role" validate:"omitnil,oneof=admin seller"`
	IsActive *bool       `json:"is_active"`
}
