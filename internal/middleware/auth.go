package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"crm-backend/internal/auth"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
	"crm-backend/pkg/utils"
)

type contextKey string

const AccountKey contextKey = "account"

type AuthMiddleware struct {
	jwtManager  *auth.JWTManager
	accountRepo *repositories.AccountRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, accountRepo *repositories.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:  jwtManager,
		accountRepo: accountRepo,
	}
}

// Authenticate validates the bearer token, resolves the account it names,
// and rejects callers whose account is missing or disabled. Token state is
// never trusted over the store: the account is re-read on every request.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.Error(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(w, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				utils.Error(w, http.StatusUnauthorized, "Token expired")
				return
			}
			utils.Error(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		account, err := m.accountRepo.GetByID(r.Context(), claims.Subject)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		if account.Status != models.StatusActive {
			utils.Error(w, http.StatusUnauthorized, "Account disabled")
			return
		}

		ctx := context.WithValue(r.Context(), AccountKey, account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin layers an administrator gate on top of Authenticate. The 403
// fires before the wrapped handler touches the store.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := AccountFromContext(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		if account.Role != models.RoleAdmin {
			utils.Error(w, http.StatusForbidden, "Forbidden: administrator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AccountFromContext extracts the resolved caller from the request context.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	account, ok := ctx.Value(AccountKey).(*models.Account)
	return account, ok
}
