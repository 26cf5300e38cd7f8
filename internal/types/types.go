// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSeller
}

type User struct {
	ID              string    `db:"id" json:"id"`
	Email           string    `db:"email" json:"email,omitempty"`
	FirstName       string    `db:"first_name" json:"first_name,omitempty"`
	LastName        string    `db:"last_name" json:"last_name,omitempty"`
	ProfileImageURL string    `db:"profile_image_url" json:"profile_image_url,omitempty"`
	Role            Role      `db:"role" json:"role"`
	CompanyID       string    `db:"company_id" json:"company_id,omitempty"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName is "first last", falling back to the email and then the id
func (u *User) DisplayName() string {
	return DisplayName(u.ID, u.Email, u.FirstName, u.LastName)
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// BelongsTo reports whether the user is an active member of the company
func (u *User) BelongsTo(companyID string) bool {
	return u != nil && u.IsActive && u.CompanyID != "" && u.CompanyID == companyID
}

// CompanyScope is the company the user acts within, empty for nil or unassigned users
func (u *User) CompanyScope() string {
	if u == nil {
		return ""
	}
	return u.CompanyID
}

func DisplayName(id, email, firstName, lastName string) string {
	if name := strings.TrimSpace(firstName + " " + lastName); name != "" {
		return name
	}

	if email != "" {
		return email
	}

	return id
}

type Company struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	LogoURL        string    `db:"logo_url" json:"logo_url,omitempty"`
	PrimaryColor   string    `db:"primary_color" json:"primary_color"`
	SecondaryColor string    `db:"secondary_color" json:"secondary_color"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

const (
	DefaultPrimaryColor   = "#10b981"
	DefaultSecondaryColor = "#f59e0b"
	DefaultPrizeEmoji     = "🏆"
)

type Campaign struct {
	ID               string    `db:"id" json:"id"`
	CompanyID        string    `db:"company_id" json:"company_id"`
	Name             string    `db:"name" json:"name"`
	Description      string    `db:"description" json:"description,omitempty"`
	PrizeEmoji       string    `db:"prize_emoji" json:"prize_emoji"`
	PrizeImageURL    string    `db:"prize_image_url" json:"prize_image_url,omitempty"`
	PrizeDescription string    `db:"prize_description" json:"prize_description,omitempty"`
	StartDate        time.Time `db:"start_date" json:"start_date"`
	EndDate          time.Time `db:"end_date" json:"end_date"`
	TargetAmount     *Amount   `db:"target_amount" json:"target_amount,omitempty"`
	IsActive         bool      `db:"is_active" json:"is_active"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Running reports whether the campaign is flagged active and now falls within its dates.
// The stored flag wins: an inactive campaign never runs, whatever its dates say.
func (c *Campaign) Running(now time.Time) bool {
	return c.IsActive && !now.Before(c.StartDate) && !now.After(c.EndDate)
}

type Participant struct {
	ID         string    `db:"id" json:"id"`
	CampaignID string    `db:"campaign_id" json:"campaign_id"`
	UserID     string    `db:"user_id" json:"user_id"`
	JoinedAt   time.Time `db:"joined_at" json:"joined_at"`
	User       *User     `json:"user,omitempty"`
}

type Sale struct {
	ID                 string    `db:"id" json:"id"`
	CampaignID         string    `db:"campaign_id" json:"campaign_id"`
	SellerID           string    `db:"seller_id" json:"seller_id"`
	SellerName         string    `json:"seller_name,omitempty"`
	Amount             Amount    `db:"amount" json:"amount"`
	CustomerName       string    `db:"customer_name" json:"customer_name"`
	ProductDescription string    `db:"product_description" json:"product_description"`
	Notes              string    `db:"notes" json:"notes,omitempty"`
	SaleDate           time.Time `db:"sale_date" json:"sale_date"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	CreatedBy          string    `db:"created_by" json:"created_by"`
}

// LeaderboardEntry is the aggregate of one seller's sales within a campaign
type LeaderboardEntry struct {
	Rank            int    `json:"rank"`
	SellerID        string `json:"seller_id"`
	SellerName      string `json:"seller_name"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	TotalAmount     Amount `json:"total_amount"`
	SalesCount      int64  `json:"sales_count"`
}

type Invitation struct {
	ID        string     `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	CompanyID string     `db:"company_id" json:"company_id"`
	Role      Role       `db:"role" json:"role"`
	Token     string     `db:"token" json:"token,omitempty"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	UsedAt    *time.Time `db:"used_at" json:"used_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	CreatedBy string     `db:"created_by" json:"created_by"`
}

func (i *Invitation) Used() bool {
	return i.UsedAt != nil
}

func (i *Invitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
