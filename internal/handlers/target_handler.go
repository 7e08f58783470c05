package handlers

import (
	"encoding/json"
	"net/http"

	"crm-backend/internal/models"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type TargetHandler struct {
	Service *services.TargetService
}

func NewTargetHandler(s *services.TargetService) *TargetHandler {
	return &TargetHandler{Service: s}
}

// UpsertTarget sets a salesperson's targets. Achieved fields are derived and
// cannot be set here.
func (h *TargetHandler) UpsertTarget(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	target, err := h.Service.Upsert(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, target.Response(), "Target saved successfully")
}

func (h *TargetHandler) ListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]*models.TargetResponse, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.Response())
	}
	utils.Success(w, http.StatusOK, out, "")
}

func (h *TargetHandler) GetTarget(w http.ResponseWriter, r *http.Request) {
	target, err := h.Service.GetByUser(r.Context(), mux.Vars(r)["user_id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, target.Response(), "")
}
