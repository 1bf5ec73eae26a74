package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/fameflow-backend/internal/auth"
	"github.com/baharkarakas/fameflow-backend/internal/events"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/baharkarakas/fameflow-backend/internal/repository/memory"
)

func init() { auth.Cost = bcrypt.MinCost }

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.New()
}

func addUser(t *testing.T, st *memory.Store, name, balance string) models.User {
	t.Helper()
	return st.AddUser(models.User{
		Username: name,
		Email:    name + "@example.com",
		Balance:  decimal.RequireFromString(balance),
	})
}

func balanceOf(t *testing.T, st *memory.Store, id int64) decimal.Decimal {
	t.Helper()
	b, err := st.Ledger().Balance(context.Background(), id)
	require.NoError(t, err)
	return b
}

func ordersOf(t *testing.T, st *memory.Store, id *int64) []models.Order {
	t.Helper()
	out, err := st.Orders().List(context.Background(), id, 1000, 0)
	require.NoError(t, err)
	return out
}

func ptr[T any](v T) *T { return &v }

// recordingPublisher captures published events.
type recordingPublisher struct {
	ch chan events.OrderEvent
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{ch: make(chan events.OrderEvent, 16)}
}

func (p *recordingPublisher) Publish(_ context.Context, e events.OrderEvent) error {
	p.ch <- e
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
