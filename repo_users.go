package securelogin

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the user repository
type Users interface {
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	GetWithAccess(ctx context.Context, id int64) (*User, error)
	GetWithAccessTx(ctx context.Context, tx bun.IDB, id int64) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EmailExistsTx(ctx context.Context, tx bun.IDB, email string) (bool, error)
	AssignRole(ctx context.Context, userID, roleID int64) error
	AssignRoleTx(ctx context.Context, tx bun.IDB, userID, roleID int64) error
	MarkVerified(ctx context.Context, id int64) error
	MarkVerifiedTx(ctx context.Context, tx bun.IDB, id int64) error
}

type users struct {
	db *bun.DB
}

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (a *users) Create(ctx context.Context, record *User) (*User, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error) {
	if _, err := tx.NewInsert().Model(record).Returning("id").Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to create user")
	}
	return record, nil
}

// GetByEmail loads a user with its roles eagerly joined. Returns a
// not-found rich error when no row matches.
func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Relation("UserRoles.Role").
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, wrapUserLookupErr(err, map[string]any{"email": email})
	}

	return record, nil
}

// GetWithAccess loads a user with roles and every permission those roles
// grant, in one eager query.
func (a *users) GetWithAccess(ctx context.Context, id int64) (*User, error) {
	return a.GetWithAccessTx(ctx, a.db, id)
}

func (a *users) GetWithAccessTx(ctx context.Context, tx bun.IDB, id int64) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Relation("UserRoles.Role").
		Relation("UserRoles.Role.RolePermissions.Permission").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, wrapUserLookupErr(err, map[string]any{"id": id})
	}

	return record, nil
}

func (a *users) EmailExists(ctx context.Context, email string) (bool, error) {
	return a.EmailExistsTx(ctx, a.db, email)
}

func (a *users) EmailExistsTx(ctx context.Context, tx bun.IDB, email string) (bool, error) {
	exists, err := tx.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.email = ?", email).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryOperation, "failed to check email")
	}
	return exists, nil
}

func (a *users) AssignRole(ctx context.Context, userID, roleID int64) error {
	return a.AssignRoleTx(ctx, a.db, userID, roleID)
}

func (a *users) AssignRoleTx(ctx context.Context, tx bun.IDB, userID, roleID int64) error {
	link := &UserRole{UserID: userID, RoleID: roleID}
	_, err := tx.NewInsert().
		Model(link).
		On("CONFLICT (user_id, role_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to assign role")
	}
	return nil
}

func (a *users) MarkVerified(ctx context.Context, id int64) error {
	return a.MarkVerifiedTx(ctx, a.db, id)
}

func (a *users) MarkVerifiedTx(ctx context.Context, tx bun.IDB, id int64) error {
	now := time.Now()
	res, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("is_verified = ?", true).
		Set("updated_at = ?", now).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to mark user verified")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrUserNotFound.Clone().WithMetadata(map[string]any{"id": id})
	}

	return nil
}

func wrapUserLookupErr(err error, meta map[string]any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound.Clone().WithMetadata(meta)
	}
	return errors.Wrap(err, errors.CategoryOperation, "failed to load user")
}
