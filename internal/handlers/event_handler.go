package handlers

import (
	"encoding/json"
	"net/http"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
)

type EventHandler struct {
	Service *services.EventService
}

func NewEventHandler(s *services.EventService) *EventHandler {
	return &EventHandler{Service: s}
}

func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	events, err := h.Service.List(r.Context(), caller)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, events, "")
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.Service.Create(r.Context(), caller, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, event, "Event created successfully")
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := h.Service.Update(r.Context(), caller, mux.Vars(r)["id"], fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, event, "Event updated successfully")
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	if err := h.Service.Delete(r.Context(), caller, mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, nil, "Event deleted successfully")
}
