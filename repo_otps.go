package securelogin

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Otps is the one-time code repository
type Otps interface {
	Create(ctx context.Context, record *UserOtp) (*UserOtp, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *UserOtp) (*UserOtp, error)
	LatestByUser(ctx context.Context, userID int64) (*UserOtp, error)
	LatestByUserTx(ctx context.Context, tx bun.IDB, userID int64) (*UserOtp, error)
	MarkUsed(ctx context.Context, id int64) error
	MarkUsedTx(ctx context.Context, tx bun.IDB, id int64) error
}

type otps struct {
	db *bun.DB
}

func NewOtpsRepository(db *bun.DB) Otps {
	return &otps{db: db}
}

func (a *otps) Create(ctx context.Context, record *UserOtp) (*UserOtp, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *otps) CreateTx(ctx context.Context, tx bun.IDB, record *UserOtp) (*UserOtp, error) {
	if _, err := tx.NewInsert().Model(record).Returning("id").Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to store otp")
	}
	return record, nil
}

// LatestByUser returns the most recently issued code row for the user.
// Rows issued earlier are never consulted; issuing a new code supersedes
// every previous one.
func (a *otps) LatestByUser(ctx context.Context, userID int64) (*UserOtp, error) {
	return a.LatestByUserTx(ctx, a.db, userID)
}

func (a *otps) LatestByUserTx(ctx context.Context, tx bun.IDB, userID int64) (*UserOtp, error) {
	record := &UserOtp{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", userID).
		OrderExpr("?TableAlias.created_at DESC, ?TableAlias.id DESC").
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOtpNotFound.Clone().WithMetadata(map[string]any{"user_id": userID})
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to load otp")
	}

	return record, nil
}

// MarkUsed consumes a code row so it is never accepted again, even while
// still inside its expiry window.
func (a *otps) MarkUsed(ctx context.Context, id int64) error {
	return a.MarkUsedTx(ctx, a.db, id)
}

func (a *otps) MarkUsedTx(ctx context.Context, tx bun.IDB, id int64) error {
	res, err := tx.NewUpdate().
		Model((*UserOtp)(nil)).
		Set("used = ?", true).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to mark otp used")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrOtpNotFound.Clone().WithMetadata(map[string]any{"id": id})
	}

	return nil
}
