package securelogin

// PermissionCode identifies a grantable capability. The code doubles as
// the permission's short name in storage.
type PermissionCode = string

const (
	PermissionViewUsers   PermissionCode = "VIEW_USERS"
	PermissionCreateUsers PermissionCode = "CREATE_USERS"
	PermissionEditUsers   PermissionCode = "EDIT_USERS"
	PermissionDeleteUsers PermissionCode = "DELETE_USERS"

	PermissionViewPermissions   PermissionCode = "VIEW_PERMISSIONS"
	PermissionAssignPermissions PermissionCode = "ASSIGN_PERMISSIONS"
)

const (
	GroupUserManagement = "User Management"
	GroupAccessControl  = "Access Control"
)

// PermissionDescription is one catalog entry: the stable code, its human
// names, and the group it belongs to.
type PermissionDescription struct {
	Code      PermissionCode `json:"code"`
	ShortName string         `json:"short_name"`
	FullName  string         `json:"full_name"`
	Group     string         `json:"group"`
}

// permissionCatalog is the static registry of every permission the system
// knows about. Order here is the order listings report.
var permissionCatalog = []PermissionDescription{
	{Code: PermissionViewUsers, ShortName: "View Users", FullName: "Can view and list user accounts", Group: GroupUserManagement},
	{Code: PermissionCreateUsers, ShortName: "Create Users", FullName: "Can create user accounts", Group: GroupUserManagement},
	{Code: PermissionEditUsers, ShortName: "Edit Users", FullName: "Can edit user accounts", Group: GroupUserManagement},
	{Code: PermissionDeleteUsers, ShortName: "Delete Users", FullName: "Can delete user accounts", Group: GroupUserManagement},
	{Code: PermissionViewPermissions, ShortName: "View Permissions", FullName: "Can view permissions and their groups", Group: GroupAccessControl},
	{Code: PermissionAssignPermissions, ShortName: "Assign Permissions", FullName: "Can assign permissions to roles", Group: GroupAccessControl},
}

// AllPermissionDescriptions returns every catalog entry in declaration
// order. The slice is a copy, callers may mutate it.
func AllPermissionDescriptions() []PermissionDescription {
	out := make([]PermissionDescription, len(permissionCatalog))
	copy(out, permissionCatalog)
	return out
}

// GetPermissionShortName resolves a code to its configured short name,
// falling back to the code itself for unknown codes.
func GetPermissionShortName(code PermissionCode) string {
	for _, d := range permissionCatalog {
		if d.Code == code {
			return d.ShortName
		}
	}
	return code
}
