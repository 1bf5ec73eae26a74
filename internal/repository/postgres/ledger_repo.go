package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/fameflow-backend/internal/errs"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ledgerRepo struct{ q querier }

func (r *ledgerRepo) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var b decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT balance FROM users WHERE id=$1`, userID).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, errs.ErrNotFound
	}
	return b, err
}

func (r *ledgerRepo) Credit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	var b decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE users
		    SET balance = balance + $2,
		        updated_at = now()
		  WHERE id = $1
		  RETURNING balance`,
		userID, amount,
	).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, errs.ErrNotFound
	}
	if isPgCode(err, numericOutOfRange) {
		return decimal.Zero, errs.Invalid("balance would exceed %s", models.MaxMoney.String())
	}
	return b, err
}

// Debit is a compare-and-swap: the WHERE clause re-checks the balance under
// the row lock, so two racing debits cannot both pass.
func (r *ledgerRepo) Debit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	var b decimal.Decimal
	err := r.q.QueryRow(ctx,
		`UPDATE users
		    SET balance = balance - $2,
		        updated_at = now()
		  WHERE id = $1 AND balance >= $2
		  RETURNING balance`,
		userID, amount,
	).Scan(&b)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, err
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, userID).Scan(&exists); err != nil {
		return decimal.Zero, err
	}
	if !exists {
		return decimal.Zero, errs.ErrNotFound
	}
	return decimal.Zero, errs.ErrInsufficientFunds
}
