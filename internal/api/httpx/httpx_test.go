package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/fameflow-backend/internal/errs"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
		msg    string
	}{
		{errs.ErrInvalidAmount, http.StatusBadRequest, "invalid_input", errs.ErrInvalidAmount.Error()},
		{errs.ErrInsufficientFunds, http.StatusPaymentRequired, "insufficient_funds", "insufficient funds"},
		{errs.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "invalid credentials"},
		{errs.ErrUserSuspended, http.StatusForbidden, "user_suspended", "user suspended"},
		{fmt.Errorf("load: %w", errs.ErrNotFound), http.StatusNotFound, "not_found", "load: not found"},
		{fmt.Errorf("%w: views", errs.ErrServiceDisabled), http.StatusUnprocessableEntity, "service_disabled", "service disabled: views"},
		{errs.ErrMaintenance, http.StatusServiceUnavailable, "maintenance", "maintenance mode"},
		{errs.ErrDuplicateID, http.StatusInternalServerError, "internal_error", "internal error"},
		{errors.New("dial tcp: refused"), http.StatusInternalServerError, "internal_error", "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteServiceError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.msg, body.Error)
		})
	}
}
