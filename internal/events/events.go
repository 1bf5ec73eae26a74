package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const OrderCompleted = "order.completed"

// OrderEvent is handed to the external fulfillment worker once a purchase
// has committed.
type OrderEvent struct {
	Event      string           `json:"event"`
	OrderID    string           `json:"order_id"`
	UserID     *int64           `json:"user_id,omitempty"`
	Type       models.OrderType `json:"type"`
	Amount     int64            `json:"amount"`
	Target     string           `json:"target"`
	Price      decimal.Decimal  `json:"price"`
	OccurredAt time.Time        `json:"occurred_at"`
}

func NewOrderCompleted(o models.Order) OrderEvent {
	e := OrderEvent{
		Event:      OrderCompleted,
		OrderID:    o.ID,
		UserID:     o.UserID,
		Type:       o.Type,
		Amount:     o.Amount,
		Price:      o.Price,
		OccurredAt: o.CreatedAt,
	}
	if o.Target != nil {
		e.Target = *o.Target
	}
	return e
}

type Publisher interface {
	Publish(ctx context.Context, e OrderEvent) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Publish keys messages by order id so retries land on the same partition.
func (p *KafkaPublisher) Publish(ctx context.Context, e OrderEvent) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", e.OrderID, err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OrderID),
		Value: b,
		Time:  e.OccurredAt,
	})
}

func (p *KafkaPublisher) Close() error { return p.writer.Close() }

// Noop drops events; used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, OrderEvent) error { return nil }
func (Noop) Close() error                              { return nil }
