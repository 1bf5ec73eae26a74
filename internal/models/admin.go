package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Admin struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	Role             string     `json:"role"`
	TwoFactorEnabled bool       `json:"two_factor_enabled"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type APIKeyStatus string

const (
	APIKeyEnabled  APIKeyStatus = "Enabled"
	APIKeyDisabled APIKeyStatus = "Disabled"
)

type APIKey struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	KeyValue     string       `json:"key_value"`
	Provider     string       `json:"provider"`
	Status       APIKeyStatus `json:"status"`
	UsageLimit   int64        `json:"usage_limit"` // -1 = unlimited
	CurrentUsage int64        `json:"current_usage"`
	CreatedAt    time.Time    `json:"created_at"`
}

type SubscriptionPlan struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration string          `json:"duration"`
	Features *string         `json:"features,omitempty"`
	Status   string          `json:"status"`
}

type GrowthPoint struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
	Users   int64           `json:"users"`
}

type Stats struct {
	TotalUsers   int64           `json:"totalUsers"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalOrders  int64           `json:"totalOrders"`
	ActiveSubs   int64           `json:"activeSubs"`
	Growth       []GrowthPoint   `json:"growth"`
}
