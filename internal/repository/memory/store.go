// Package memory is a process-local repository.Store. It backs tests and
// STORAGE_DRIVER=memory; every operation runs under one store-wide mutex, so
// WithTx is trivially serializable.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baharkarakas/fameflow-backend/internal/models"
	repo "github.com/baharkarakas/fameflow-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type subscription struct {
	userID, planID int64
	status         string
}

type data struct {
	users    map[int64]models.User
	orders   map[string]models.Order
	orderSeq []string
	apiKeys  []models.APIKey
	settings map[string]string
	admins   []models.Admin
	logs     []models.ActivityLog
	plans    []models.SubscriptionPlan
	subs     []subscription

	nextUserID, nextKeyID, nextAdminID, nextLogID int64
}

func (d *data) clone() *data {
	c := *d
	c.users = make(map[int64]models.User, len(d.users))
	for k, v := range d.users {
		c.users[k] = v
	}
	c.orders = make(map[string]models.Order, len(d.orders))
	for k, v := range d.orders {
		c.orders[k] = v
	}
	c.orderSeq = append([]string(nil), d.orderSeq...)
	c.logs = append([]models.ActivityLog(nil), d.logs...)
	return &c
}

type Store struct {
	mu  sync.Mutex
	d   *data
	now func() time.Time
}

var _ repo.Store = (*Store)(nil)

// New returns a store seeded with default settings and subscription plans.
func New() *Store {
	s := &Store{
		d: &data{
			users:    map[int64]models.User{},
			orders:   map[string]models.Order{},
			settings: map[string]string{},
		},
		now: time.Now,
	}
	for k, v := range models.DefaultSettings().Values() {
		s.d.settings[string(k)] = v
	}
	features := []string{"1k followers/month", "5k followers/month, priority delivery", "unlimited likes, 10k followers/month"}
	for i, p := range []struct {
		name, price, duration string
	}{
		{"Starter", "499.00", "Monthly"},
		{"Growth", "1499.00", "Monthly"},
		{"Pro", "14999.00", "Yearly"},
	} {
		f := features[i]
		s.d.plans = append(s.d.plans, models.SubscriptionPlan{
			ID: int64(i + 1), Name: p.name, Price: decimal.RequireFromString(p.price),
			Duration: p.duration, Features: &f, Status: "Active",
		})
	}
	return s
}

// AddUser inserts a user; there is no signup path, so tests and local runs
// seed users directly.
func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.nextUserID++
	u.ID = s.d.nextUserID
	if u.Status == "" {
		u.Status = models.UserActive
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.d.users[u.ID] = u
	return u
}

func (s *Store) AddSubscription(userID, planID int64, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.subs = append(s.d.subs, subscription{userID: userID, planID: planID, status: status})
}

func (s *Store) Users() repo.Users               { return &usersRepo{base{s: s}} }
func (s *Store) Ledger() repo.Ledger             { return &ledgerRepo{base{s: s}} }
func (s *Store) Orders() repo.Orders             { return &ordersRepo{base{s: s}} }
func (s *Store) APIKeys() repo.APIKeys           { return &apiKeysRepo{base{s: s}} }
func (s *Store) Settings() repo.Settings         { return &settingsRepo{base{s: s}} }
func (s *Store) Admins() repo.Admins             { return &adminsRepo{base{s: s}} }
func (s *Store) ActivityLogs() repo.ActivityLogs { return &activityLogsRepo{base{s: s}} }
func (s *Store) Stats() repo.Stats               { return &statsRepo{base{s: s}} }
func (s *Store) Close()                          {}

// WithTx holds the store lock for the whole of fn and restores a snapshot
// when fn fails. fn must only use the Tx it is given.
func (s *Store) WithTx(ctx context.Context, fn func(repo.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.d.clone()
	committed := false
	defer func() {
		if !committed {
			s.d = snap
		}
	}()
	if err := fn(txRepos{base{s: s, locked: true}}); err != nil {
		return err
	}
	committed = true
	return nil
}

type txRepos struct{ b base }

func (t txRepos) Users() repo.Users               { return &usersRepo{t.b} }
func (t txRepos) Ledger() repo.Ledger             { return &ledgerRepo{t.b} }
func (t txRepos) Orders() repo.Orders             { return &ordersRepo{t.b} }
func (t txRepos) ActivityLogs() repo.ActivityLogs { return &activityLogsRepo{t.b} }

// base takes the store lock unless the caller already holds it inside WithTx.
type base struct {
	s      *Store
	locked bool
}

func (b base) with(fn func(d *data) error) error {
	if !b.locked {
		b.s.mu.Lock()
		defer b.s.mu.Unlock()
	}
	return fn(b.s.d)
}

// SetClock replaces the time source used for created_at stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
