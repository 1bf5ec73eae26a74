package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/fameflow-backend/internal/auth"
	"github.com/baharkarakas/fameflow-backend/internal/config"
	"github.com/baharkarakas/fameflow-backend/internal/events"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/baharkarakas/fameflow-backend/internal/repository/memory"
	"github.com/baharkarakas/fameflow-backend/internal/services"
	"github.com/baharkarakas/fameflow-backend/internal/worker"
)

type testServer struct {
	h  http.Handler
	st *memory.Store
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	auth.Cost = bcrypt.MinCost

	st := memory.New()
	wp := worker.NewPool(1, 16)
	t.Cleanup(wp.Stop)

	authSvc := services.NewAuthService(st.Admins(), st.ActivityLogs())
	_, err := authSvc.SeedAdmin(context.Background(), "admin@fameflow.com", "admin123")
	require.NoError(t, err)

	h := NewRouter(RouterDeps{
		Cfg:      config.Config{RateRPS: 0},
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		OrderSvc: services.NewOrderService(st, events.Noop{}, wp),
		Ledger:   services.NewLedgerService(st),
		AdminSvc: services.NewAdminService(st),
		AuthSvc:  authSvc,
	})
	return testServer{h: h, st: st}
}

func (s testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool             `json:"success"`
	OrderID string           `json:"orderId"`
	Amount  int64            `json:"amount"`
	Price   decimal.Decimal  `json:"price"`
	Balance *decimal.Decimal `json:"balance"`
	Message string           `json:"message"`
	Error   string           `json:"error"`
	Code    string           `json:"code"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestOrderFlow(t *testing.T) {
	s := newTestServer(t)
	u := s.st.AddUser(models.User{Username: "ana", Email: "ana@example.com"})

	rec := s.do(t, http.MethodPost, "/api/deposit", map[string]any{"userId": u.ID, "amount": 250})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dep := decode[envelope](t, rec)
	assert.True(t, dep.Success)
	require.NotNil(t, dep.Balance)
	assert.True(t, dep.Balance.Equal(decimal.NewFromInt(250)))

	rec = s.do(t, http.MethodPost, "/api/order", map[string]any{
		"type": "followers", "amount": 500, "username": "@ana", "userId": u.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ord := decode[envelope](t, rec)
	assert.True(t, ord.Success)
	assert.Equal(t, "Order placed successfully", ord.Message)
	assert.True(t, ord.Price.Equal(decimal.NewFromInt(375)))
	require.NotNil(t, ord.Balance)
	assert.True(t, ord.Balance.Equal(decimal.NewFromInt(125)))

	rec = s.do(t, http.MethodGet, "/api/orders?userId="+itoa(u.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]models.Order](t, rec)
	require.Len(t, orders, 2)
	assert.Equal(t, ord.OrderID, orders[0].ID)
	assert.Equal(t, dep.OrderID, orders[1].ID)

	rec = s.do(t, http.MethodGet, "/api/users/"+itoa(u.ID)+"/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bal := decode[struct {
		Balance decimal.Decimal `json:"balance"`
	}](t, rec)
	assert.True(t, bal.Balance.Equal(decimal.NewFromInt(125)))
}

func TestOrderErrors(t *testing.T) {
	s := newTestServer(t)
	poor := s.st.AddUser(models.User{Username: "bo", Email: "bo@example.com", Balance: decimal.NewFromInt(50)})

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		code   string
	}{
		{"insufficient funds", "/api/order", map[string]any{"type": "views", "amount": 10000, "link": "https://x", "userId": poor.ID}, http.StatusPaymentRequired, "insufficient_funds"},
		{"missing target", "/api/order", map[string]any{"type": "views", "amount": 10}, http.StatusBadRequest, "invalid_input"},
		{"unknown type", "/api/order", map[string]any{"type": "shares", "amount": 10, "target": "@x"}, http.StatusBadRequest, "invalid_input"},
		{"unknown user", "/api/order", map[string]any{"type": "likes", "amount": 10, "target": "@x", "userId": 999}, http.StatusNotFound, "not_found"},
		{"bad deposit", "/api/deposit", map[string]any{"amount": 0}, http.StatusBadRequest, "invalid_input"},
		{"malformed json", "/api/deposit", "not an object", http.StatusBadRequest, "invalid_input"},
		{"budget beyond int64", "/api/order", map[string]any{"type": "likes", "budget": json.Number("10000000000000000000"), "target": "@x"}, http.StatusBadRequest, "invalid_input"},
		{"quantity beyond price column", "/api/order", map[string]any{"type": "likes", "amount": int64(math.MaxInt64), "target": "@x"}, http.StatusBadRequest, "invalid_input"},
		{"deposit beyond price column", "/api/deposit", map[string]any{"amount": int64(10_000_000_000_000)}, http.StatusBadRequest, "invalid_input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			env := decode[envelope](t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.code, env.Code)
			assert.NotEmpty(t, env.Error)
		})
	}

	b, err := s.st.Ledger().Balance(context.Background(), poor.ID)
	require.NoError(t, err)
	assert.True(t, b.Equal(decimal.NewFromInt(50)))
}

func TestOrderRequestNormalisation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/order", map[string]any{
		"type": "likes", "amount": 10, "target": "  ", "username": " @x ", "userId": 0,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ord := decode[envelope](t, rec)
	assert.Nil(t, ord.Balance)

	orders, err := s.st.Orders().List(context.Background(), nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Nil(t, orders[0].UserID)
	require.NotNil(t, orders[0].Target)
	assert.Equal(t, "@x", *orders[0].Target)

	rec = s.do(t, http.MethodPost, "/api/deposit", map[string]any{"userId": 0, "amount": 5})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decode[envelope](t, rec).Balance)
}

func TestMaintenanceBlocksOrders(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/admin/settings", map[string]string{"key": "maintenance_mode", "value": "true"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/order", map[string]any{"type": "likes", "amount": 10, "target": "@x"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "maintenance", decode[envelope](t, rec).Code)

	rec = s.do(t, http.MethodGet, "/api/settings/public", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pub := decode[publicSettingsView](t, rec)
	assert.True(t, pub.MaintenanceMode)
	assert.True(t, pub.Features["likes"])
}

type publicSettingsView struct {
	MaintenanceMode bool            `json:"maintenance_mode"`
	Features        map[string]bool `json:"features"`
}

func TestAdminLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"email": "admin@fameflow.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[struct {
		Success bool `json:"success"`
		Admin   struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"admin"`
	}](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "admin@fameflow.com", resp.Admin.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.do(t, http.MethodPost, "/api/admin/login", map[string]string{"email": "admin@fameflow.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", decode[envelope](t, rec).Code)
}

func TestAdminEndpoints(t *testing.T) {
	s := newTestServer(t)
	u := s.st.AddUser(models.User{Username: "cy", Email: "cy@example.com"})

	rec := s.do(t, http.MethodPost, "/api/admin/users/"+itoa(u.ID)+"/status", map[string]string{"status": "Suspended"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/admin/users/"+itoa(u.ID)+"/status", map[string]string{"status": "Gone"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]models.User](t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, models.UserSuspended, users[0].Status)

	rec = s.do(t, http.MethodPost, "/api/order", map[string]any{"type": "likes", "amount": 1, "target": "@cy", "userId": u.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/admin/api-keys", map[string]string{"name": "main", "key_value": "k", "provider": "smm"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodPost, "/api/admin/api-keys", map[string]string{"name": "main"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/api-keys", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.APIKey](t, rec), 1)

	rec = s.do(t, http.MethodPost, "/api/admin/settings", map[string]string{"key": "bogus", "value": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/admin/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.DefaultSettings(), decode[models.Settings](t, rec))

	rec = s.do(t, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.Stats](t, rec)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Len(t, stats.Growth, 7)

	rec = s.do(t, http.MethodGet, "/api/admin/activity?limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.ActivityLog](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/api/admin/plans", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.SubscriptionPlan](t, rec), 3)

	rec = s.do(t, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"recharge_presets":[10,25,50,100,250,500]`)
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
