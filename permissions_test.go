package securelogin

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePermissionsIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.perms.ResolvePermissions(ctx))

	records, err := env.repo.Permissions().ListWithGroups(ctx)
	require.NoError(t, err)
	require.Len(t, records, len(permissionCatalog))

	// second run adds nothing and touches nothing
	require.NoError(t, env.perms.ResolvePermissions(ctx))

	again, err := env.repo.Permissions().ListWithGroups(ctx)
	require.NoError(t, err)
	require.Len(t, again, len(permissionCatalog))

	ids := map[int64]string{}
	for _, p := range records {
		ids[p.ID] = p.ShortName
	}
	for _, p := range again {
		assert.Equal(t, ids[p.ID], p.ShortName)
	}
}

func TestResolvePermissionsKeepsManualRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.perms.ResolvePermissions(ctx))

	group, err := env.repo.Permissions().EnsureGroup(ctx, "Legacy")
	require.NoError(t, err)

	manual := &Permission{
		ShortName:         "LEGACY_EXPORT",
		FullName:          "Can export legacy data",
		PermissionGroupID: group.ID,
	}
	_, err = env.repo.Permissions().EnsurePermission(ctx, manual)
	require.NoError(t, err)

	// reconciliation is additive, manual rows survive
	require.NoError(t, env.perms.ResolvePermissions(ctx))

	kept, err := env.repo.Permissions().GetByShortName(ctx, "LEGACY_EXPORT")
	require.NoError(t, err)
	assert.Equal(t, "Can export legacy data", kept.FullName)
}

func TestGetPermissionsFromDbGroupsAndSorts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.perms.GetPermissionsFromDb(ctx)
	require.NoError(t, err)
	require.True(t, result.Succeeded)

	groups := result.Data
	require.Len(t, groups, 2)

	names := []string{groups[0].GroupName, groups[1].GroupName}
	assert.True(t, sort.StringsAreSorted(names))
	assert.Equal(t, GroupAccessControl, groups[0].GroupName)
	assert.Equal(t, GroupUserManagement, groups[1].GroupName)

	for _, g := range groups {
		shortNames := make([]string, 0, len(g.Permissions))
		for _, p := range g.Permissions {
			shortNames = append(shortNames, p.ShortName)
			assert.Equal(t, g.GroupName, p.GroupName)
		}
		assert.True(t, sort.StringsAreSorted(shortNames), "group %s should sort by short name", g.GroupName)
	}
}

func TestGetPermissionsListsCatalog(t *testing.T) {
	env := newTestEnv(t)

	result := env.perms.GetPermissions()
	require.True(t, result.Succeeded)
	assert.Equal(t, AllPermissionDescriptions(), result.Data)
}

func TestEnsureDefaultGrants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, EnsureDefaultGrants(ctx, env.repo, env.perms))
	// rerun must not fail or duplicate
	require.NoError(t, EnsureDefaultGrants(ctx, env.repo, env.perms))

	admin := createTestUser(t, env, "Ali Valiyev", "ali@example.com", "hunter42", RoleNameAdmin, true)
	member := createTestUser(t, env, "Vali Aliyev", "vali@example.com", "hunter42", RoleNameUser, true)

	adminLoaded, err := env.repo.Users().GetWithAccess(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, adminLoaded.PermissionNames(), len(permissionCatalog))

	memberLoaded, err := env.repo.Users().GetWithAccess(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{PermissionViewUsers}, memberLoaded.PermissionNames())
}
