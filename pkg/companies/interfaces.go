// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

import (
	"context"

	"github.com/canonical/sales-leaderboard/internal/types"
)

type ServiceInterface interface {
	CreateCompany(ctx context.Context, subject string, actor *types.User, req *CreateCompanyRequest) (*types.Company, error)
	GetCompany(ctx context.Context, actor *types.User, id string) (*types.Company, error)
	UpdateCompany(ctx context.Context, actor *types.User, id string, req *UpdateCompanyRequest) (*types.Company, error)
	Me(ctx context.Context, actor *types.User) (*types.User, error)
	ListSellers(ctx context.Context, actor *types.User) ([]*types.User, error)
	UpdateUser(ctx context.Context, actor *types.User, id string, req *UpdateUserRequest) (*types.User, error)
}

// StorageInterface is the subset of internal/storage used to manage companies and their members.
type StorageInterface interface {
	CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error)
	GetCompanyByID(ctx context.Context, id string) (*types.Company, error)
	UpdateCompany(ctx context.Context, c *types.Company, paths []string) error
	UpsertUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	ListUsersByCompanyID(ctx context.Context, companyID string) ([]*types.User, error)
	UpdateUser(ctx context.Context, u *types.User, paths []string) error
}

type AuthorizerInterface interface {
	Check(ctx context.Context, actor *types.User, permission, companyID string) error
}
