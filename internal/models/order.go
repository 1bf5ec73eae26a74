package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderFollowers OrderType = "followers"
	OrderViews     OrderType = "views"
	OrderLikes     OrderType = "likes"
	OrderDeposit   OrderType = "deposit"
)

// IsPurchase reports whether the type is a sellable engagement service.
func (t OrderType) IsPurchase() bool {
	switch t {
	case OrderFollowers, OrderViews, OrderLikes:
		return true
	}
	return false
}

// MaxMoney is the largest amount a price or balance column can hold
// (NUMERIC(14,2)).
var MaxMoney = decimal.RequireFromString("999999999999.99")

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

type Order struct {
	ID              string          `json:"id"`
	UserID          *int64          `json:"user_id,omitempty"`
	Type            OrderType       `json:"type"`
	Amount          int64           `json:"amount"`
	Price           decimal.Decimal `json:"price"`
	Target          *string         `json:"target,omitempty"`
	Status          OrderStatus     `json:"status"`
	ProviderOrderID *string         `json:"provider_order_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
