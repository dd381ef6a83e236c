package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPermissions(t *testing.T) {
	tests := []struct {
		role string
		want Permissions
	}{
		{RoleViewer, Permissions{View: true}},
		{RoleEditor, Permissions{View: true, Upload: true, Download: true}},
		{RoleAdmin, Permissions{View: true, Upload: true, Download: true, Delete: true, ManageUsers: true}},
		{RoleSuperAdmin, Permissions{View: true, Upload: true, Download: true, Delete: true, ManageUsers: true}},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultPermissions(tt.role))
		})
	}
}

func TestPermissionPatchApply(t *testing.T) {
	on := true
	off := false

	base := DefaultPermissions(RoleEditor)
	got := PermissionPatch{Delete: &on, Upload: &off}.Apply(base)

	assert.True(t, got.Delete)
	assert.False(t, got.Upload)
	// untouched fields keep their values
	assert.True(t, got.View)
	assert.True(t, got.Download)
	assert.False(t, got.ManageUsers)
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleViewer, RoleEditor, RoleAdmin, RoleSuperAdmin} {
		assert.True(t, ValidRole(role), role)
	}
	assert.False(t, ValidRole("owner"))
	assert.False(t, ValidRole(""))
}
