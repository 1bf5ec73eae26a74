package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrInvalidAmount, "invalid_input"},
		{ErrUnknownService, "invalid_input"},
		{Invalid("target is required"), "invalid_input"},
		{fmt.Errorf("debit: %w", ErrInsufficientFunds), "insufficient_funds"},
		{ErrInvalidCredentials, "invalid_credentials"},
		{ErrUserSuspended, "user_suspended"},
		{ErrNotFound, "not_found"},
		{ErrServiceDisabled, "service_disabled"},
		{ErrMaintenance, "maintenance"},
		{ErrDuplicateID, "internal_error"},
		{errors.New("conn reset"), "internal_error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Code(tt.err), "%v", tt.err)
	}
}
