package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/fameflow-backend/internal/api/httpx"
	"github.com/baharkarakas/fameflow-backend/internal/api/validate"
	"github.com/baharkarakas/fameflow-backend/internal/middleware"
	"github.com/baharkarakas/fameflow-backend/internal/models"
	"github.com/baharkarakas/fameflow-backend/internal/services"
)

type AdminHandler struct {
	Admin *services.AdminService
}

func NewAdminHandler(a *services.AdminService) *AdminHandler { return &AdminHandler{Admin: a} }

func actorOf(r *http.Request) services.Actor {
	return services.Actor{Type: models.ActorAdmin, IP: middleware.ClientIP(r)}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Admin.Stats(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, st)
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.Admin.ListUsers(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeValidation(w, validate.Errs{{Field: "id", Msg: "must be a positive integer"}})
		return
	}
	var req statusReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	if ve := validate.Collect(
		validate.OneOf("status", req.Status, string(models.UserActive), string(models.UserSuspended)),
	); ve != nil {
		writeValidation(w, ve)
		return
	}
	if err := h.Admin.UpdateUserStatus(r.Context(), actorOf(r), id, models.UserStatus(req.Status)); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, okResp{Success: true})
}

func (h *AdminHandler) APIKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.Admin.ListAPIKeys(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, keys)
}

type apiKeyReq struct {
	Name     string `json:"name"`
	KeyValue string `json:"key_value"`
	Provider string `json:"provider"`
}

type apiKeyResp struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

func (h *AdminHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req apiKeyReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	if ve := validate.Collect(
		validate.Required("name", req.Name),
		validate.Required("key_value", req.KeyValue),
		validate.Required("provider", req.Provider),
	); ve != nil {
		writeValidation(w, ve)
		return
	}
	k, err := h.Admin.CreateAPIKey(r.Context(), actorOf(r), req.Name, req.KeyValue, req.Provider)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, apiKeyResp{Success: true, ID: k.ID})
}

func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Admin.Settings(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

type settingReq struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type settingResp struct {
	Success  bool            `json:"success"`
	Settings models.Settings `json:"settings"`
}

func (h *AdminHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req settingReq
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	if ve := validate.Collect(validate.Required("key", req.Key)); ve != nil {
		writeValidation(w, ve)
		return
	}
	s, err := h.Admin.UpdateSetting(r.Context(), actorOf(r), req.Key, req.Value)
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, settingResp{Success: true, Settings: s})
}

func (h *AdminHandler) Activity(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Admin.ListActivity(r.Context(), validate.IntOr(r.URL.Query().Get("limit"), 0))
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, logs)
}

func (h *AdminHandler) Plans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Admin.ListPlans(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, plans)
}
