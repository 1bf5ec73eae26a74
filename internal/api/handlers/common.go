package handlers

import (
	"net/http"

	"github.com/baharkarakas/fameflow-backend/internal/api/httpx"
	"github.com/baharkarakas/fameflow-backend/internal/api/validate"
)

func writeValidation(w http.ResponseWriter, ve validate.Errs) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_input", ve.Error(), ve)
}

type okResp struct {
	Success bool `json:"success"`
}
