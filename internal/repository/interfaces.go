package repository

import (
	"context"
	"time"

	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/shopspring/decimal"
)

type Users interface {
	GetByID(ctx context.Context, id int64) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateStatus(ctx context.Context, id int64, status models.UserStatus) error
}

// Ledger mutates users.balance. Debit must compare and subtract in one
// atomic step and return errs.ErrInsufficientFunds without touching the row
// when the balance is short.
type Ledger interface {
	Balance(ctx context.Context, userID int64) (decimal.Decimal, error)
	Credit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
}

type Orders interface {
	// Create fails with errs.ErrDuplicateID when the id is taken.
	Create(ctx context.Context, o models.Order) (models.Order, error)
	GetByID(ctx context.Context, id string) (models.Order, error)
	// List returns newest first; a nil userID lists every order.
	List(ctx context.Context, userID *int64, limit, offset int) ([]models.Order, error)
}

type APIKeys interface {
	List(ctx context.Context) ([]models.APIKey, error)
	Create(ctx context.Context, k models.APIKey) (models.APIKey, error)
}

type Settings interface {
	All(ctx context.Context) (map[string]string, error)
	// Set is last-writer-wins.
	Set(ctx context.Context, key models.SettingKey, value string) error
}

type Admins interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, a models.Admin) (models.Admin, error)
	GetByEmail(ctx context.Context, email string) (models.Admin, error)
	TouchLogin(ctx context.Context, id int64, at time.Time) error
}

type ActivityLogs interface {
	Create(ctx context.Context, l models.ActivityLog) error
	List(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

type Stats interface {
	Totals(ctx context.Context) (models.Stats, error)
	// Growth returns one point per day, oldest first, for the last days.
	Growth(ctx context.Context, days int) ([]models.GrowthPoint, error)
	Plans(ctx context.Context) ([]models.SubscriptionPlan, error)
}

// Tx exposes the repositories that take part in an order transaction.
type Tx interface {
	Users() Users
	Ledger() Ledger
	Orders() Orders
	ActivityLogs() ActivityLogs
}

// Transactor runs fn in one atomic unit: everything fn wrote commits
// together or not at all.
type Transactor interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}

// Store is the process-wide storage component.
type Store interface {
	Transactor
	Users() Users
	Ledger() Ledger
	Orders() Orders
	APIKeys() APIKeys
	Settings() Settings
	Admins() Admins
	ActivityLogs() ActivityLogs
	Stats() Stats
	Close()
}
