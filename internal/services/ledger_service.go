package services

import (
	"context"

	"github.com/baharkarakas/fameflow-backend/internal/errs"
	repo "github.com/baharkarakas/fameflow-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// LedgerService owns users.balance. A nil user id is a guest: it is never
// checked or charged.
type LedgerService struct {
	store repo.Store
}

func NewLedgerService(store repo.Store) *LedgerService { return &LedgerService{store: store} }

func (s *LedgerService) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.store.Ledger().Balance(ctx, userID)
}

func (s *LedgerService) Credit(ctx context.Context, userID *int64, amount decimal.Decimal) (*decimal.Decimal, error) {
	var out *decimal.Decimal
	err := s.store.WithTx(ctx, func(tx repo.Tx) error {
		b, err := ApplyCredit(ctx, tx, userID, amount)
		out = b
		return err
	})
	return out, err
}

func (s *LedgerService) Debit(ctx context.Context, userID *int64, amount decimal.Decimal) (*decimal.Decimal, error) {
	var out *decimal.Decimal
	err := s.store.WithTx(ctx, func(tx repo.Tx) error {
		b, err := ApplyDebit(ctx, tx, userID, amount)
		out = b
		return err
	})
	return out, err
}

// ApplyCredit credits inside the caller's transaction and returns the new
// balance, or nil for a guest.
func ApplyCredit(ctx context.Context, tx repo.Tx, userID *int64, amount decimal.Decimal) (*decimal.Decimal, error) {
	if !amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}
	if userID == nil {
		return nil, nil
	}
	b, err := tx.Ledger().Credit(ctx, *userID, amount)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ApplyDebit fails with errs.ErrInsufficientFunds, leaving the balance
// untouched, when the user cannot cover amount.
func ApplyDebit(ctx context.Context, tx repo.Tx, userID *int64, amount decimal.Decimal) (*decimal.Decimal, error) {
	if !amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}
	if userID == nil {
		return nil, nil
	}
	b, err := tx.Ledger().Debit(ctx, *userID, amount)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
