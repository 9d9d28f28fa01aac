// Package authroles maps identity provider groups to application roles.
package authroles

import (
	"slices"

	domainauth "github.com/target/serverboard/internal/domain/auth"
)

// GroupMapper grants admin to members of AdminGroup, user to members of
// UserGroup and guest to everyone else. Empty group names never match.
type GroupMapper struct {
	AdminGroup string
	UserGroup  string
}

func (m GroupMapper) Map(groups []string) domainauth.Role {
	switch {
	case m.AdminGroup != "" && slices.Contains(groups, m.AdminGroup):
		return domainauth.RoleAdmin
	case m.UserGroup != "" && slices.Contains(groups, m.UserGroup):
		return domainauth.RoleUser
	default:
		return domainauth.RoleGuest
	}
}
