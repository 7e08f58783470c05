package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// LeadHandler wires lead CRUD to the achievement refresh. Each mutation
// returns the set of accounts whose aggregates may have changed; the refresh
// runs after the mutation has committed and its failure never turns a
// succeeded mutation into an error response.
type LeadHandler struct {
	Service      *services.LeadService
	Achievements *services.AchievementService
}

func NewLeadHandler(s *services.LeadService, achievements *services.AchievementService) *LeadHandler {
	return &LeadHandler{Service: s, Achievements: achievements}
}

func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	leads, err := h.Service.List(r.Context(), caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]*models.LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.Response())
	}
	utils.Success(w, http.StatusOK, out, "")
}

func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	lead, err := h.Service.Get(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, lead.Response(), "")
}

func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	var req models.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lead, affected, err := h.Service.Create(r.Context(), caller, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Achievements.RecalculateAll(r.Context(), affected)

	utils.Success(w, http.StatusCreated, lead.Response(), "Lead created successfully")
}

func (h *LeadHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	var req models.UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lead, affected, err := h.Service.Update(r.Context(), caller, mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Achievements.RecalculateAll(r.Context(), affected)

	utils.Success(w, http.StatusOK, lead.Response(), "Lead updated successfully")
}

func (h *LeadHandler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	affected, err := h.Service.Delete(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Achievements.RecalculateAll(r.Context(), affected)

	utils.Success(w, http.StatusOK, nil, "Lead deleted successfully")
}

func (h *LeadHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	var req models.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	count, affected, err := h.Service.BulkDelete(r.Context(), caller, req.IDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Achievements.RecalculateAll(r.Context(), affected)

	utils.Success(w, http.StatusOK, nil, fmt.Sprintf("%d leads deleted successfully", count))
}

func (h *LeadHandler) BulkAssign(w http.ResponseWriter, r *http.Request) {
	var req models.BulkAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SalesPersonID == "" {
		utils.Error(w, http.StatusBadRequest, "salesPersonId is required")
		return
	}

	count, affected, err := h.Service.BulkAssign(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.Achievements.RecalculateAll(r.Context(), affected)

	utils.Success(w, http.StatusOK, nil, fmt.Sprintf("%d leads assigned successfully", count))
}
