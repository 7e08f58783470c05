package handlers

import (
	"errors"
	"log"
	"net/http"

	"crm-backend/internal/repositories"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"
)

// writeServiceError maps the service/repository error taxonomy onto HTTP
// statuses. Anything unclassified is a generic server fault; it is logged
// but its detail is not leaked to the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, repositories.ErrInvalidID):
		utils.Error(w, http.StatusBadRequest, "Invalid ID")
	case errors.Is(err, repositories.ErrDuplicateEmail):
		utils.Error(w, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, repositories.ErrUnknownItemType):
		utils.Error(w, http.StatusBadRequest, "Invalid item type")
	case errors.Is(err, services.ErrForbidden):
		utils.Error(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrAdminNotDeletable):
		utils.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidRole):
		utils.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAccountDisabled),
		errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvalidLeadStatus),
		errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, services.ErrInvalidPeriod):
		utils.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[HTTP] unhandled error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
