// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

const (
	CAN_VIEW_PERMISSION   = "can_view"
	CAN_EDIT_PERMISSION   = "can_edit"
	CAN_CREATE_PERMISSION = "can_create"
	CAN_DELETE_PERMISSION = "can_delete"
)

func CompanyResource(companyID string) string {
	return "company:" + companyID
}

func CampaignResource(campaignID string) string {
	return "campaign:" + campaignID
}

func SaleResource(saleID string) string {
	return "sale:" + saleID
}

func UserResource(userID string) string {
	return "user:" + userID
}

func InvitationResource(invitationID string) string {
	return "invitation:" + invitationID
}
