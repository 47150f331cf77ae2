package securelogin

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Permissions is the permission and permission group repository
type Permissions interface {
	EnsureGroup(ctx context.Context, name string) (*PermissionGroup, error)
	EnsureGroupTx(ctx context.Context, tx bun.IDB, name string) (*PermissionGroup, error)
	EnsurePermission(ctx context.Context, record *Permission) (*Permission, error)
	EnsurePermissionTx(ctx context.Context, tx bun.IDB, record *Permission) (*Permission, error)
	GetByShortName(ctx context.Context, shortName string) (*Permission, error)
	ListWithGroups(ctx context.Context) ([]*Permission, error)
}

type permissions struct {
	db *bun.DB
}

func NewPermissionsRepository(db *bun.DB) Permissions {
	return &permissions{db: db}
}

// EnsureGroup inserts the group if missing and returns the stored row.
// Safe to call concurrently; the unique name constraint arbitrates.
func (a *permissions) EnsureGroup(ctx context.Context, name string) (*PermissionGroup, error) {
	return a.EnsureGroupTx(ctx, a.db, name)
}

func (a *permissions) EnsureGroupTx(ctx context.Context, tx bun.IDB, name string) (*PermissionGroup, error) {
	group := &PermissionGroup{Name: name}
	_, err := tx.NewInsert().
		Model(group).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to ensure permission group")
	}

	record := &PermissionGroup{}
	err = tx.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load permission group")
	}

	return record, nil
}

// EnsurePermission inserts the permission if its short name is missing and
// returns the stored row. Existing rows are never updated or removed.
func (a *permissions) EnsurePermission(ctx context.Context, record *Permission) (*Permission, error) {
	return a.EnsurePermissionTx(ctx, a.db, record)
}

func (a *permissions) EnsurePermissionTx(ctx context.Context, tx bun.IDB, record *Permission) (*Permission, error) {
	_, err := tx.NewInsert().
		Model(record).
		On("CONFLICT (short_name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to ensure permission")
	}

	stored := &Permission{}
	err = tx.NewSelect().
		Model(stored).
		Where("?TableAlias.short_name = ?", record.ShortName).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load permission")
	}

	return stored, nil
}

func (a *permissions) GetByShortName(ctx context.Context, shortName string) (*Permission, error) {
	record := &Permission{}
	err := a.db.NewSelect().
		Model(record).
		Relation("PermissionGroup").
		Where("?TableAlias.short_name = ?", shortName).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("permission not found", errors.CategoryNotFound).
				WithMetadata(map[string]any{"short_name": shortName})
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load permission")
	}

	return record, nil
}

// ListWithGroups returns every permission with its group eagerly joined.
func (a *permissions) ListWithGroups(ctx context.Context) ([]*Permission, error) {
	var records []*Permission
	err := a.db.NewSelect().
		Model(&records).
		Relation("PermissionGroup").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to list permissions")
	}
	return records, nil
}
