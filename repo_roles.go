package securelogin

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Roles is the role repository
type Roles interface {
	GetByName(ctx context.Context, name string) (*Role, error)
	GetByNameTx(ctx context.Context, tx bun.IDB, name string) (*Role, error)
	Create(ctx context.Context, record *Role) (*Role, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Role) (*Role, error)
	GrantPermission(ctx context.Context, roleID, permissionID int64) error
	GrantPermissionTx(ctx context.Context, tx bun.IDB, roleID, permissionID int64) error
}

type roles struct {
	db *bun.DB
}

func NewRolesRepository(db *bun.DB) Roles {
	return &roles{db: db}
}

func (a *roles) GetByName(ctx context.Context, name string) (*Role, error) {
	return a.GetByNameTx(ctx, a.db, name)
}

func (a *roles) GetByNameTx(ctx context.Context, tx bun.IDB, name string) (*Role, error) {
	record := &Role{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoleNotFound.Clone().WithMetadata(map[string]any{"name": name})
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load role")
	}

	return record, nil
}

func (a *roles) Create(ctx context.Context, record *Role) (*Role, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *roles) CreateTx(ctx context.Context, tx bun.IDB, record *Role) (*Role, error) {
	if _, err := tx.NewInsert().Model(record).Returning("id").Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to create role")
	}
	return record, nil
}

func (a *roles) GrantPermission(ctx context.Context, roleID, permissionID int64) error {
	return a.GrantPermissionTx(ctx, a.db, roleID, permissionID)
}

func (a *roles) GrantPermissionTx(ctx context.Context, tx bun.IDB, roleID, permissionID int64) error {
	link := &RolePermission{RoleID: roleID, PermissionID: permissionID}
	_, err := tx.NewInsert().
		Model(link).
		On("CONFLICT (role_id, permission_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to grant permission")
	}
	return nil
}
