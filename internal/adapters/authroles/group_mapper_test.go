package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	domainauth "github.com/target/serverboard/internal/domain/auth"
)

func TestGroupMapper_Map(t *testing.T) {
	m := GroupMapper{AdminGroup: "ops", UserGroup: "players"}
	tests := []struct {
		name   string
		groups []string
		want   domainauth.Role
	}{
		{"admin wins over user", []string{"players", "ops"}, domainauth.RoleAdmin},
		{"user", []string{"players"}, domainauth.RoleUser},
		{"unknown", []string{"other"}, domainauth.RoleGuest},
		{"none", nil, domainauth.RoleGuest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Map(tt.groups))
		})
	}
}

func TestGroupMapper_EmptyGroupNeverMatches(t *testing.T) {
	assert.Equal(t, domainauth.RoleGuest, GroupMapper{}.Map([]string{""}))
}
