package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/fameflow-backend/internal/api/httpx"
	"github.com/baharkarakas/fameflow-backend/internal/api/validate"
	"github.com/baharkarakas/fameflow-backend/internal/middleware"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/baharkarakas/fameflow-backend/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
	Ledger *services.LedgerService
}

func NewOrderHandler(o *services.OrderService, l *services.LedgerService) *OrderHandler {
	return &OrderHandler{Orders: o, Ledger: l}
}

type orderReq struct {
	Type   string          `json:"type"`
	Amount int64           `json:"amount"`
	Budget decimal.Decimal `json:"budget"`
	// The storefront sends the destination as target, username or link.
	Target   string `json:"target"`
	Username string `json:"username"`
	Link     string `json:"link"`
	UserID   *int64 `json:"userId"`
}

func (q orderReq) target() string {
	for _, t := range []string{q.Target, q.Username, q.Link} {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return ""
}

// userOrGuest treats a missing or zero userId as a guest. User ids start
// at 1.
func userOrGuest(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

type orderResp struct {
	Success bool             `json:"success"`
	OrderID string           `json:"orderId"`
	Amount  int64            `json:"amount"`
	Price   decimal.Decimal  `json:"price"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
	Message string           `json:"message"`
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req orderReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	if ve := validate.Collect(
		validate.Required("type", req.Type),
		validate.Required("target", req.target()),
	); ve != nil {
		writeValidation(w, ve)
		return
	}

	rc, err := h.Orders.PlaceOrder(r.Context(), services.PlaceOrderInput{
		Type:     models.OrderType(req.Type),
		Quantity: req.Amount,
		Budget:   req.Budget,
		Target:   req.target(),
		UserID:   userOrGuest(req.UserID),
		IP:       middleware.ClientIP(r),
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orderResp{
		Success: true,
		OrderID: rc.OrderID,
		Amount:  rc.Amount,
		Price:   rc.Price,
		Balance: rc.Balance,
		Message: "Order placed successfully",
	})
}

type depositReq struct {
	UserID *int64 `json:"userId"`
	Amount int64  `json:"amount"`
}

func (h *OrderHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req depositReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	if ve := validate.Collect(validate.MinInt("amount", req.Amount, 1)); ve != nil {
		writeValidation(w, ve)
		return
	}

	rc, err := h.Orders.Deposit(r.Context(), services.DepositInput{
		UserID: userOrGuest(req.UserID),
		Amount: req.Amount,
		IP:     middleware.ClientIP(r),
	})
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orderResp{
		Success: true,
		OrderID: rc.OrderID,
		Amount:  rc.Amount,
		Price:   rc.Price,
		Balance: rc.Balance,
		Message: "Deposit recorded",
	})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	uid, fe := validate.OptionalID("userId", q.Get("userId"))
	if fe != nil {
		writeValidation(w, validate.Collect(fe))
		return
	}
	orders, err := h.Orders.ListOrders(r.Context(), uid,
		validate.IntOr(q.Get("limit"), 0),
		validate.IntOr(q.Get("offset"), 0),
	)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

type balanceResp struct {
	UserID  int64           `json:"userId"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *OrderHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id, fe := validate.OptionalID("id", chi.URLParam(r, "id"))
	if fe != nil || id == nil {
		writeValidation(w, validate.Errs{{Field: "id", Msg: "must be a positive integer"}})
		return
	}
	b, err := h.Ledger.Balance(r.Context(), *id)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, balanceResp{UserID: *id, Balance: b})
}
