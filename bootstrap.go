package securelogin

import (
	"context"
)

// defaultUserGrants are the permission codes the User role starts with.
// Admin gets every catalog code.
var defaultUserGrants = []PermissionCode{
	PermissionViewUsers,
}

// EnsureDefaultGrants reconciles the permission catalog into storage and
// grants the seeded roles their baseline permissions: Admin receives every
// catalog code, User the read-only subset. Grants are additive and
// idempotent; existing links are untouched on rerun.
func EnsureDefaultGrants(ctx context.Context, repo RepositoryManager, permissions *PermissionService) error {
	if err := permissions.ResolvePermissions(ctx); err != nil {
		return err
	}

	admin, err := repo.Roles().GetByName(ctx, RoleNameAdmin)
	if err != nil {
		return err
	}

	user, err := repo.Roles().GetByName(ctx, RoleNameUser)
	if err != nil {
		return err
	}

	for _, desc := range permissionCatalog {
		perm, err := repo.Permissions().GetByShortName(ctx, desc.Code)
		if err != nil {
			return err
		}
		if err := repo.Roles().GrantPermission(ctx, admin.ID, perm.ID); err != nil {
			return err
		}
	}

	for _, code := range defaultUserGrants {
		perm, err := repo.Permissions().GetByShortName(ctx, code)
		if err != nil {
			return err
		}
		if err := repo.Roles().GrantPermission(ctx, user.ID, perm.ID); err != nil {
			return err
		}
	}

	return nil
}
