package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_roles(t *testing.T) {
	tests := []struct {
		name      string
		roles     []string
		isAdmin   bool
		isTeacher bool
	}{
		{"no roles", nil, false, false},
		{"teacher", []string{RoleTeacher}, false, true},
		{"admin", []string{RoleAdmin}, true, false},
		{"principal implies admin", []string{RoleAdminPrincipal}, true, false},
		{"both portals", []string{RoleAdmin, RoleTeacher}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr := User{Roles: tt.roles}
			assert.Equal(t, tt.isAdmin, usr.IsAdmin())
			assert.Equal(t, tt.isTeacher, usr.IsTeacher())
		})
	}
}

func TestMaxRolePriority(t *testing.T) {
	assert.Equal(t, 0, MaxRolePriority(nil))
	assert.Equal(t, RolePriority(RoleTeacher), MaxRolePriority([]string{RoleTeacher}))
	assert.Equal(t, RolePriority(RoleAdminPrincipal), MaxRolePriority(AllRoles))
	assert.Greater(t, RolePriority(RoleAdmin), RolePriority(RoleTeacher))
}

func TestUser_password(t *testing.T) {
	var usr User
	assert.NoError(t, usr.SetPassword("s3cr3t-Pa55"))
	assert.NoError(t, usr.CheckPassword("s3cr3t-Pa55"))
	assert.Error(t, usr.CheckPassword("wrong"))
}
