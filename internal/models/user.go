package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserStatus string

const (
	UserActive    UserStatus = "Active"
	UserSuspended UserStatus = "Suspended"
)

func (s UserStatus) Valid() bool { return s == UserActive || s == UserSuspended }

type User struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	Email      string          `json:"email"`
	Country    *string         `json:"country,omitempty"`
	Balance    decimal.Decimal `json:"balance"`
	Status     UserStatus      `json:"status"`
	DeviceInfo *string         `json:"device_info,omitempty"`
	LastLogin  *time.Time      `json:"last_login,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
