package securelogin

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the account model. Accounts start unverified and flip to
// verified once the latest emailed code is confirmed.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	FullName      string     `bun:"fullname,notnull" json:"fullname,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Salt          string     `bun:"salt,notnull" json:"-"`
	IsVerified    bool       `bun:"is_verified,notnull" json:"is_verified"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`

	UserRoles []*UserRole `bun:"rel:has-many,join:id=user_id" json:"user_roles,omitempty"`
}

// RoleNames lists the names of the roles assigned to the user.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.UserRoles))
	for _, ur := range u.UserRoles {
		if ur.Role != nil {
			names = append(names, ur.Role.Name)
		}
	}
	return names
}

// PermissionNames returns the distinct union of permission short names
// granted across every role assigned to the user.
func (u *User) PermissionNames() []string {
	seen := map[string]bool{}
	names := []string{}
	for _, ur := range u.UserRoles {
		if ur.Role == nil {
			continue
		}
		for _, rp := range ur.Role.RolePermissions {
			if rp.Permission == nil || seen[rp.Permission.ShortName] {
				continue
			}
			seen[rp.Permission.ShortName] = true
			names = append(names, rp.Permission.ShortName)
		}
	}
	return names
}

// Role groups permissions under a name, e.g. Admin or User
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`

	RolePermissions []*RolePermission `bun:"rel:has-many,join:id=role_id" json:"role_permissions,omitempty"`
}

// PermissionGroup is a feature area permissions hang off of
type PermissionGroup struct {
	bun.BaseModel `bun:"table:permission_groups,alias:pgr"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string `bun:"name,notnull,unique" json:"name,omitempty"`

	Permissions []*Permission `bun:"rel:has-many,join:id=permission_group_id" json:"permissions,omitempty"`
}

// Permission is a single grantable capability. ShortName is the stable
// identity and matches a catalog code.
type Permission struct {
	bun.BaseModel     `bun:"table:permissions,alias:per"`
	ID                int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	ShortName         string `bun:"short_name,notnull,unique" json:"short_name,omitempty"`
	FullName          string `bun:"full_name,notnull" json:"full_name,omitempty"`
	PermissionGroupID int64  `bun:"permission_group_id,notnull" json:"permission_group_id,omitempty"`

	PermissionGroup *PermissionGroup `bun:"rel:belongs-to,join:permission_group_id=id" json:"permission_group,omitempty"`
}

// RolePermission links a role to a permission
type RolePermission struct {
	bun.BaseModel `bun:"table:role_permissions,alias:rpe"`
	RoleID        int64 `bun:"role_id,pk" json:"role_id,omitempty"`
	PermissionID  int64 `bun:"permission_id,pk" json:"permission_id,omitempty"`

	Role       *Role       `bun:"rel:belongs-to,join:role_id=id" json:"role,omitempty"`
	Permission *Permission `bun:"rel:belongs-to,join:permission_id=id" json:"permission,omitempty"`
}

// UserRole links a user to a role
type UserRole struct {
	bun.BaseModel `bun:"table:user_roles,alias:url"`
	UserID        int64 `bun:"user_id,pk" json:"user_id,omitempty"`
	RoleID        int64 `bun:"role_id,pk" json:"role_id,omitempty"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Role *Role `bun:"rel:belongs-to,join:role_id=id" json:"role,omitempty"`
}

// UserOtp is a one-time verification code issuance. Only the most recent
// row per user is ever considered valid, and a row that verified an
// account is marked used and never accepted again.
type UserOtp struct {
	bun.BaseModel `bun:"table:user_otps,alias:otp"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	UserID        int64     `bun:"user_id,notnull" json:"user_id,omitempty"`
	Code          string    `bun:"code,notnull" json:"-"`
	Used          bool      `bun:"used,notnull" json:"used,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"created_at,omitempty"`
}

// Seeded role names. Registration assigns one of these depending on the
// originating site.
const (
	RoleNameAdmin = "Admin"
	RoleNameUser  = "User"
)
