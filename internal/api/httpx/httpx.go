package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/baharkarakas/fameflow-backend/internal/errs"
)

const maxBodyBytes = 1 << 20

type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details any) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

var statusByCode = map[string]int{
	"invalid_input":       http.StatusBadRequest,
	"insufficient_funds":  http.StatusPaymentRequired,
	"invalid_credentials": http.StatusUnauthorized,
	"user_suspended":      http.StatusForbidden,
	"not_found":           http.StatusNotFound,
	"service_disabled":    http.StatusUnprocessableEntity,
	"maintenance":         http.StatusServiceUnavailable,
}

// StatusFor maps a service error onto its HTTP status.
func StatusFor(err error) int {
	if s, ok := statusByCode[errs.Code(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// WriteServiceError renders err in the standard envelope. Internal errors
// are not echoed to the client.
func WriteServiceError(w http.ResponseWriter, err error) {
	code := errs.Code(err)
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	WriteError(w, status, code, msg, nil)
}

// DecodeJSON reads one JSON object from the body. An empty body leaves v
// untouched.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errs.Invalid("malformed JSON body: %v", err)
	}
	return nil
}
