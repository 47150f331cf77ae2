package securelogin

import (
	"context"
	"sort"
)

// PermissionList is a flat permission row with its group name
type PermissionList struct {
	ID        int64  `json:"id"`
	ShortName string `json:"short_name"`
	FullName  string `json:"full_name"`
	GroupName string `json:"group_name"`
}

// PermissionGroupList is one group with its permissions
type PermissionGroupList struct {
	GroupName   string           `json:"group_name"`
	Permissions []PermissionList `json:"permissions"`
}

// PermissionService reconciles the static catalog into storage and serves
// permission listings.
type PermissionService struct {
	repo   RepositoryManager
	logger Logger
}

func NewPermissionService(repo RepositoryManager, logger Logger) *PermissionService {
	return &PermissionService{
		repo:   repo,
		logger: ResolveLogger("permissions", logger),
	}
}

// GetPermissions returns the catalog entries in declaration order without
// touching storage.
func (s *PermissionService) GetPermissions() Result[[]PermissionDescription] {
	return Success(AllPermissionDescriptions())
}

// ResolvePermissions makes sure every catalog entry exists in the
// database: missing groups and permissions are created, existing rows are
// left untouched, and nothing is ever removed. Idempotent and safe under
// concurrent callers thanks to the unique constraints.
func (s *PermissionService) ResolvePermissions(ctx context.Context) error {
	perms := s.repo.Permissions()
	for _, desc := range permissionCatalog {
		group, err := perms.EnsureGroup(ctx, desc.Group)
		if err != nil {
			return err
		}

		record := &Permission{
			ShortName:         desc.Code,
			FullName:          desc.FullName,
			PermissionGroupID: group.ID,
		}
		if _, err := perms.EnsurePermission(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// GetPermissionsFromDb reconciles the catalog, then returns every stored
// permission grouped by its permission group. Groups are sorted by name
// and permissions within a group by short name.
func (s *PermissionService) GetPermissionsFromDb(ctx context.Context) (Result[[]PermissionGroupList], error) {
	if err := s.ResolvePermissions(ctx); err != nil {
		return Failure[[]PermissionGroupList]("failed to resolve permissions"), err
	}

	records, err := s.repo.Permissions().ListWithGroups(ctx)
	if err != nil {
		return Failure[[]PermissionGroupList]("failed to list permissions"), err
	}

	byGroup := map[string][]PermissionList{}
	for _, p := range records {
		groupName := ""
		if p.PermissionGroup != nil {
			groupName = p.PermissionGroup.Name
		}
		byGroup[groupName] = append(byGroup[groupName], PermissionList{
			ID:        p.ID,
			ShortName: p.ShortName,
			FullName:  p.FullName,
			GroupName: groupName,
		})
	}

	groups := make([]PermissionGroupList, 0, len(byGroup))
	for name, perms := range byGroup {
		sort.Slice(perms, func(i, j int) bool {
			return perms[i].ShortName < perms[j].ShortName
		})
		groups = append(groups, PermissionGroupList{GroupName: name, Permissions: perms})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].GroupName < groups[j].GroupName
	})

	return Success(groups), nil
}
