package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateID        = errors.New("duplicate id")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserSuspended      = errors.New("user suspended")
	ErrServiceDisabled    = errors.New("service disabled")
	ErrMaintenance        = errors.New("maintenance mode")
)

var (
	ErrInvalidAmount  = fmt.Errorf("%w: amount must be > 0", ErrInvalidInput)
	ErrUnknownService = fmt.Errorf("%w: unknown service type", ErrInvalidInput)
)

// Invalid wraps ErrInvalidInput with a field-level message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Code returns the stable wire code for err, matching the first sentinel in
// its chain. Anything unrecognised is an internal error.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrUserSuspended):
		return "user_suspended"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrServiceDisabled):
		return "service_disabled"
	case errors.Is(err, ErrMaintenance):
		return "maintenance"
	}
	return "internal_error"
}
