package handlers

import (
	"encoding/json"
	"net/http"

	"crm-backend/internal/middleware"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
)

// ManagementHandler serves the reference-data lists. Documents are
// schemaless: whatever fields the caller sends are stored as-is, plus
// audit metadata.
type ManagementHandler struct {
	Service *services.ManagementService
}

func NewManagementHandler(s *services.ManagementService) *ManagementHandler {
	return &ManagementHandler{Service: s}
}

func (h *ManagementHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context(), mux.Vars(r)["item_type"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, items, "")
}

func (h *ManagementHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())

	var doc bson.M
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Service.Create(r.Context(), mux.Vars(r)["item_type"], doc, caller.ID.Hex())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, item, "Item created successfully")
}

func (h *ManagementHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.AccountFromContext(r.Context())
	vars := mux.Vars(r)

	var doc bson.M
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Service.Update(r.Context(), vars["item_type"], vars["item_id"], doc, caller.ID.Hex())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, item, "Item updated successfully")
}

func (h *ManagementHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Service.Delete(r.Context(), vars["item_type"], vars["item_id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.Success(w, http.StatusOK, nil, "Item deleted successfully")
}
