package auth

// Roles form an ordered hierarchy: viewer < editor < admin < super_admin.
const (
	RoleViewer     = "viewer"
	RoleEditor     = "editor"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// SuperAdminID is the well-known identifier of the seeded super admin
// account. Exactly one account carries it, and that account can never be
// deleted or demoted.
const SuperAdminID = "super-admin"

func ValidRole(role string) bool {
	switch role {
	case RoleViewer, RoleEditor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Permissions is the per-user capability set. It defaults from the user's
// role but each flag can be overridden independently by an administrator.
type Permissions struct {
	View        bool `json:"view"`
	Upload      bool `json:"upload"`
	Download    bool `json:"download"`
	Delete      bool `json:"delete"`
	ManageUsers bool `json:"manage_users"`
}

// PermissionPatch is a partial update; nil fields keep the current value.
type PermissionPatch struct {
	View        *bool `json:"view,omitempty"`
	Upload      *bool `json:"upload,omitempty"`
	Download    *bool `json:"download,omitempty"`
	Delete      *bool `json:"delete,omitempty"`
	ManageUsers *bool `json:"manage_users,omitempty"`
}

// Apply merges the patch into p and returns the result.
func (patch PermissionPatch) Apply(p Permissions) Permissions {
	if patch.View != nil {
		p.View = *patch.View
	}
	if patch.Upload != nil {
		p.Upload = *patch.Upload
	}
	if patch.Download != nil {
		p.Download = *patch.Download
	}
	if patch.Delete != nil {
		p.Delete = *patch.Delete
	}
	if patch.ManageUsers != nil {
		p.ManageUsers = *patch.ManageUsers
	}
	return p
}

// DefaultPermissions returns the fixed permission set granted to a role.
// Editors deliberately do not get delete.
func DefaultPermissions(role string) Permissions {
	switch role {
	case RoleEditor:
		return Permissions{View: true, Upload: true, Download: true}
	case RoleAdmin, RoleSuperAdmin:
		return Permissions{View: true, Upload: true, Download: true, Delete: true, ManageUsers: true}
	default:
		return Permissions{View: true}
	}
}
