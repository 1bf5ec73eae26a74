package handlers

import (
	"net/http"

	"github.com/baharkarakas/fameflow-backend/internal/api/httpx"
	"github.com/baharkarakas/fameflow-backend/internal/catalog"
	"github.com/baharkarakas/fameflow-backend/internal/services"
)

type StorefrontHandler struct {
	Admin *services.AdminService
}

func NewStorefrontHandler(a *services.AdminService) *StorefrontHandler {
	return &StorefrontHandler{Admin: a}
}

func (h *StorefrontHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, catalog.List())
}

type publicSettings struct {
	MaintenanceMode bool            `json:"maintenance_mode"`
	Announcement    string          `json:"announcement"`
	AppVersion      string          `json:"app_version"`
	Features        map[string]bool `json:"features"`
}

// PublicSettings is the subset of settings the storefront may read.
func (h *StorefrontHandler) PublicSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Admin.Settings(r.Context())
	if err != nil {
		httpx.WriteServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, publicSettings{
		MaintenanceMode: s.MaintenanceMode,
		Announcement:    s.Announcement,
		AppVersion:      s.AppVersion,
		Features: map[string]bool{
			"followers": s.FeatureFollowers,
			"views":     s.FeatureViews,
			"likes":     s.FeatureLikes,
		},
	})
}
