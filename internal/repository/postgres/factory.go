package postgres

import (
	"context"
	"errors"

	repo "github.com/baharkarakas/fameflow-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
}

var _ repo.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

func (s *Store) Users() repo.Users               { return &usersRepo{q: s.pool} }
func (s *Store) Ledger() repo.Ledger             { return &ledgerRepo{q: s.pool} }
func (s *Store) Orders() repo.Orders             { return &ordersRepo{q: s.pool} }
func (s *Store) APIKeys() repo.APIKeys           { return &apiKeysRepo{q: s.pool} }
func (s *Store) Settings() repo.Settings         { return &settingsRepo{q: s.pool} }
func (s *Store) Admins() repo.Admins             { return &adminsRepo{q: s.pool} }
func (s *Store) ActivityLogs() repo.ActivityLogs { return &activityLogsRepo{q: s.pool} }
func (s *Store) Stats() repo.Stats               { return &statsRepo{q: s.pool} }
func (s *Store) Close()                          { s.pool.Close() }

// WithTx runs fn in one READ COMMITTED transaction. Balance updates rely on
// row locks taken by conditional UPDATEs, so a stricter level would only add
// serialization failures.
func (s *Store) WithTx(ctx context.Context, fn func(repo.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	// Rollback after Commit is a no-op; this also releases the connection
	// when fn panics.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(txRepos{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type txRepos struct{ q querier }

func (t txRepos) Users() repo.Users               { return &usersRepo{q: t.q} }
func (t txRepos) Ledger() repo.Ledger             { return &ledgerRepo{q: t.q} }
func (t txRepos) Orders() repo.Orders             { return &ordersRepo{q: t.q} }
func (t txRepos) ActivityLogs() repo.ActivityLogs { return &activityLogsRepo{q: t.q} }

const (
	uniqueViolation   = "23505"
	numericOutOfRange = "22003"
)

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
