package domain

import (
	"strings"
	"time"
)

// Role is the permission level of a user. Admins may edit status cells, run
// bulk updates, and upload data; operators get the read/update surface of
// their own organization.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
)

// Organization identifies which of the three coordinating companies a user
// belongs to. The organization, combined with the per-user filters, decides
// which loads the user can see.
type Organization string

const (
	OrgWillbanks Organization = "Willbanks"
	OrgWSI       Organization = "WSI"
	OrgJordan    Organization = "Jordan"
)

// UserProfile is an application user. LocationFilter and CarrierFilter are
// only meaningful for WSI and Jordan users respectively.
type UserProfile struct {
	UserID         string       `json:"userID"`
	Email          string       `json:"email"`
	FullName       string       `json:"fullName"`
	Role           Role         `json:"role"`
	Organization   Organization `json:"organization"`
	LocationFilter string       `json:"locationFilter"`
	CarrierFilter  string       `json:"carrierFilter"`
	PasswordHash   string       `json:"-"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// DeriveProfileDefaults fills organization, role, and filters for a freshly
// registered user based on their email address. WSI and Jordan coordinators
// carry their organization name in their email; everyone else is a Willbanks
// admin.
func DeriveProfileDefaults(email string) (Organization, Role, string, string) {
	lower := strings.ToLower(email)
	switch {
	case strings.Contains(lower, "wsi"):
		return OrgWSI, RoleOperator, "WSI", ""
	case strings.Contains(lower, "jordan"):
		return OrgJordan, RoleOperator, "", "Jordan"
	}
	return OrgWillbanks, RoleAdmin, "", ""
}
