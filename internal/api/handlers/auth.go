package handlers

import (
	"net/http"

	"github.com/baharkarakas/fameflow-backend/internal/api/httpx"
	"github.com/baharkarakas/fameflow-backend/internal/api/validate"
	"github.com/baharkarakas/fameflow-backend/internal/middleware"
	"github.com/baharkarakas/fameflow-backend/internal/services"
)

// AuthHandler verifies admin credentials. It hands back the admin record;
// no token or session is issued.
type AuthHandler struct {
	Auth *services.AuthService
}

func NewAuthHandler(a *services.AuthService) *AuthHandler { return &AuthHandler{Auth: a} }

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResp struct {
	Success bool      `json:"success"`
	Admin   adminView `json:"admin"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	if ve := validate.Collect(
		validate.Required("email", req.Email),
		validate.Required("password", req.Password),
	); ve != nil {
		writeValidation(w, ve)
		return
	}

	a, err := h.Auth.Login(r.Context(), req.Email, req.Password, middleware.ClientIP(r))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loginResp{
		Success: true,
		Admin:   adminView{ID: a.ID, Email: a.Email, Role: a.Role},
	})
}
