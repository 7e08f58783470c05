package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"crm-backend/internal/metrics"
	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/services"
	"crm-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// Login handles user authentication. A throttled identity gets 423 with the
// fixed lockout duration; bad credentials and unknown emails share one 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Login(r.Context(), &req, getIPAddress(r))
	if err != nil {
		if errors.Is(err, services.ErrAccountLocked) {
			metrics.LoginAttempts.WithLabelValues("locked").Inc()
			utils.Error(w, http.StatusLocked,
				fmt.Sprintf("Account temporarily locked. Try again in %d minutes.", h.Service.LockoutMinutes()))
			return
		}
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		writeServiceError(w, err)
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	utils.Success(w, http.StatusOK, resp, "")
}

// Me returns the authenticated caller's public profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	utils.Success(w, http.StatusOK, account.Public(), "")
}

// Logout is a no-op server-side: tokens are stateless and expire on their
// own. The endpoint exists so clients have a uniform call to clear state.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.Success(w, http.StatusOK, nil, "Logged out successfully")
}

// getIPAddress extracts the real IP address from the request
func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header first (for proxies/load balancers)
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr
	return r.RemoteAddr
}
