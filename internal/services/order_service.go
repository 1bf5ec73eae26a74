package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/baharkarakas/fameflow-backend/internal/catalog"
	"github.com/baharkarakas/fameflow-backend/internal/errs"
	"github.com/baharkarakas/fameflow-backend/internal/events"
	"github.com/baharkarakas/fameflow-backend/internal/logger"
	"github.com/baharkarakas/fameflow-backend/internal/metrics"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	repo "github.com/baharkarakas/fameflow-backend/internal/repository"
	"github.com/baharkarakas/fameflow-backend/internal/worker"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	orderPrefix   = "ORD-"
	depositPrefix = "DEP-"

	// maxIDAttempts bounds the regenerate-and-retry loop on an order id
	// collision.
	maxIDAttempts = 3

	defaultListLimit = 50
	maxListLimit     = 200

	publishTimeout = 10 * time.Second
)

type PlaceOrderInput struct {
	Type models.OrderType
	// Exactly one of Quantity and Budget is set.
	Quantity int64
	Budget   decimal.Decimal
	Target   string
	UserID   *int64
	IP       string
}

type DepositInput struct {
	UserID *int64
	Amount int64
	IP     string
}

type OrderReceipt struct {
	OrderID string
	Type    models.OrderType
	Amount  int64
	Price   decimal.Decimal
	// Balance is the wallet balance after the order; nil for guests.
	Balance   *decimal.Decimal
	CreatedAt time.Time
}

type OrderService struct {
	store repo.Store
	pub   events.Publisher
	wp    *worker.Pool
	newID func(prefix string) string
}

func NewOrderService(store repo.Store, pub events.Publisher, wp *worker.Pool) *OrderService {
	return &OrderService{store: store, pub: pub, wp: wp, newID: newOrderID}
}

func newOrderID(prefix string) string {
	return prefix + strings.ToUpper(uuid.NewString())
}

// PlaceOrder charges the wallet and records a completed purchase in one
// transaction. Every call is a new order; there is no idempotency key.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderReceipt, error) {
	log := logger.FromContext(ctx)

	qty, price, err := resolve(in)
	if err == nil {
		err = s.gate(ctx, in.Type)
	}
	if err != nil {
		metrics.OrdersRejected.WithLabelValues(errs.Code(err)).Inc()
		return OrderReceipt{}, err
	}
	target := strings.TrimSpace(in.Target)

	var (
		order   models.Order
		balance *decimal.Decimal
	)
	err = s.withFreshID(ctx, orderPrefix, func(tx repo.Tx, id string) error {
		if in.UserID != nil {
			u, err := tx.Users().GetByID(ctx, *in.UserID)
			if err != nil {
				return err
			}
			if u.Status == models.UserSuspended {
				return errs.ErrUserSuspended
			}
		}

		b, err := ApplyDebit(ctx, tx, in.UserID, price)
		if err != nil {
			return err
		}

		o, err := tx.Orders().Create(ctx, models.Order{
			ID:     id,
			UserID: in.UserID,
			Type:   in.Type,
			Amount: qty,
			Price:  price,
			Target: &target,
			Status: models.OrderCompleted,
		})
		if err != nil {
			return err
		}

		if err := tx.ActivityLogs().Create(ctx, models.ActivityLog{
			ActorType: actorFor(in.UserID),
			ActorID:   in.UserID,
			Action:    "order.placed",
			Details: map[string]any{
				"order_id": id,
				"type":     string(in.Type),
				"amount":   qty,
				"price":    price.StringFixed(2),
			},
			IPAddress: in.IP,
		}); err != nil {
			return err
		}

		order, balance = o, b
		return nil
	})
	if err != nil {
		metrics.OrdersRejected.WithLabelValues(errs.Code(err)).Inc()
		if errs.Code(err) == "internal_error" {
			log.Error("place order", "type", in.Type, "err", err)
		}
		return OrderReceipt{}, err
	}

	metrics.OrdersTotal.WithLabelValues(string(order.Type)).Inc()
	metrics.OrderRevenue.WithLabelValues(string(order.Type)).Add(price.InexactFloat64())
	log.Info("order placed", "order_id", order.ID, "type", order.Type, "amount", order.Amount, "price", order.Price.StringFixed(2))

	s.dispatch(log, events.NewOrderCompleted(order))

	return OrderReceipt{
		OrderID:   order.ID,
		Type:      order.Type,
		Amount:    order.Amount,
		Price:     order.Price,
		Balance:   balance,
		CreatedAt: order.CreatedAt,
	}, nil
}

// Deposit credits the wallet and records a deposit order. Payment is trust
// based: the amount is taken as given.
func (s *OrderService) Deposit(ctx context.Context, in DepositInput) (OrderReceipt, error) {
	log := logger.FromContext(ctx)
	if in.Amount <= 0 {
		return OrderReceipt{}, errs.ErrInvalidAmount
	}
	amount := decimal.NewFromInt(in.Amount)
	if amount.GreaterThan(models.MaxMoney) {
		return OrderReceipt{}, errs.Invalid("deposit %d exceeds %s", in.Amount, models.MaxMoney.String())
	}

	var (
		order   models.Order
		balance *decimal.Decimal
	)
	err := s.withFreshID(ctx, depositPrefix, func(tx repo.Tx, id string) error {
		b, err := ApplyCredit(ctx, tx, in.UserID, amount)
		if err != nil {
			return err
		}
		o, err := tx.Orders().Create(ctx, models.Order{
			ID:     id,
			UserID: in.UserID,
			Type:   models.OrderDeposit,
			Amount: in.Amount,
			Price:  amount,
			Status: models.OrderCompleted,
		})
		if err != nil {
			return err
		}
		if err := tx.ActivityLogs().Create(ctx, models.ActivityLog{
			ActorType: actorFor(in.UserID),
			ActorID:   in.UserID,
			Action:    "wallet.deposit",
			Details:   map[string]any{"order_id": id, "amount": in.Amount},
			IPAddress: in.IP,
		}); err != nil {
			return err
		}
		order, balance = o, b
		return nil
	})
	if err != nil {
		if errs.Code(err) == "internal_error" {
			log.Error("deposit", "err", err)
		}
		return OrderReceipt{}, err
	}

	metrics.DepositsTotal.Inc()
	log.Info("deposit recorded", "order_id", order.ID, "amount", order.Amount)

	return OrderReceipt{
		OrderID:   order.ID,
		Type:      order.Type,
		Amount:    order.Amount,
		Price:     order.Price,
		Balance:   balance,
		CreatedAt: order.CreatedAt,
	}, nil
}

// ListOrders returns orders newest first, optionally for one user.
func (s *OrderService) ListOrders(ctx context.Context, userID *int64, limit, offset int) ([]models.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.Orders().List(ctx, userID, limit, offset)
}

func resolve(in PlaceOrderInput) (int64, decimal.Decimal, error) {
	if !in.Type.IsPurchase() {
		return 0, decimal.Zero, errs.ErrUnknownService
	}
	if strings.TrimSpace(in.Target) == "" {
		return 0, decimal.Zero, errs.Invalid("target is required")
	}

	var qty int64
	switch hasQty, hasBudget := in.Quantity != 0, !in.Budget.IsZero(); {
	case hasQty && hasBudget:
		return 0, decimal.Zero, errs.Invalid("give either amount or budget, not both")
	case hasQty:
		if in.Quantity < 0 {
			return 0, decimal.Zero, errs.ErrInvalidAmount
		}
		qty = in.Quantity
	case hasBudget:
		if !in.Budget.IsPositive() {
			return 0, decimal.Zero, errs.ErrInvalidAmount
		}
		q, err := catalog.QuantityFor(in.Type, in.Budget)
		if err != nil {
			return 0, decimal.Zero, err
		}
		if q <= 0 {
			return 0, decimal.Zero, errs.Invalid("budget %s buys no %s", in.Budget.String(), in.Type)
		}
		qty = q
	default:
		return 0, decimal.Zero, errs.ErrInvalidAmount
	}

	price, err := catalog.Price(in.Type, qty)
	if err != nil {
		return 0, decimal.Zero, err
	}
	if price.GreaterThan(models.MaxMoney) {
		return 0, decimal.Zero, errs.Invalid("order price %s exceeds %s", price.String(), models.MaxMoney.String())
	}
	return qty, price, nil
}

// gate applies the maintenance switch and per-service feature flags.
func (s *OrderService) gate(ctx context.Context, t models.OrderType) error {
	vals, err := s.store.Settings().All(ctx)
	if err != nil {
		return err
	}
	st := models.SettingsFromValues(vals)
	if st.MaintenanceMode {
		return errs.ErrMaintenance
	}
	if !st.Enabled(t) {
		return fmt.Errorf("%w: %s", errs.ErrServiceDisabled, t)
	}
	return nil
}

func (s *OrderService) withFreshID(ctx context.Context, prefix string, fn func(tx repo.Tx, id string) error) error {
	var err error
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id := s.newID(prefix)
		err = s.store.WithTx(ctx, func(tx repo.Tx) error { return fn(tx, id) })
		if !errors.Is(err, errs.ErrDuplicateID) {
			return err
		}
		logger.FromContext(ctx).Warn("order id collision", "order_id", id, "attempt", attempt)
	}
	return fmt.Errorf("allocate order id after %d attempts: %w", maxIDAttempts, err)
}

// dispatch hands the event to the worker pool. Publishing is best effort
// and never changes the outcome of the order.
func (s *OrderService) dispatch(log *slog.Logger, ev events.OrderEvent) {
	if s.wp == nil || s.pub == nil {
		return
	}
	err := s.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.pub.Publish(ctx, ev); err != nil {
			metrics.EventsPublished.WithLabelValues("error").Inc()
			log.Warn("publish order event", "order_id", ev.OrderID, "err", err)
			return
		}
		metrics.EventsPublished.WithLabelValues("ok").Inc()
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues("dropped").Inc()
		log.Warn("order event dropped", "order_id", ev.OrderID, "err", err)
	}
}

func actorFor(userID *int64) models.ActorType {
	if userID == nil {
		return models.ActorSystem
	}
	return models.ActorUser
}
