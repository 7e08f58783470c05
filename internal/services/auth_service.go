package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm-backend/internal/auth"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountReader is the slice of the account repository the login flow needs.
type AccountReader interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	StampLastLogin(ctx context.Context, id primitive.ObjectID, stamp string) error
}

// TokenIssuer mints access tokens for authenticated accounts.
type TokenIssuer interface {
	GenerateToken(account *models.Account) (string, error)
}

// AuthService turns an email+password submission into a session token or a
// well-defined rejection.
type AuthService struct {
	Accounts AccountReader
	Throttle *LoginThrottleService
	Tokens   TokenIssuer

	now func() time.Time
}

func NewAuthService(accounts AccountReader, throttle *LoginThrottleService, tokens TokenIssuer) *AuthService {
	return &AuthService{
		Accounts: accounts,
		Throttle: throttle,
		Tokens:   tokens,
		now:      time.Now,
	}
}

// Login authenticates an email+password pair. The lockout check runs before
// any credential verification, so a locked identity never reaches the hash
// comparison. Missing account and wrong password are reported identically.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest, ip string) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	locked, err := s.Throttle.IsLocked(ctx, email)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrAccountLocked
	}

	account, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if account == nil || !auth.VerifyPassword(account.PasswordHash, req.Password) {
		if rerr := s.Throttle.RecordAttempt(ctx, email, false, ip); rerr != nil {
			return nil, rerr
		}
		return nil, ErrInvalidCredentials
	}

	if !models.ValidRole(account.Role) {
		if rerr := s.Throttle.RecordAttempt(ctx, email, false, ip); rerr != nil {
			return nil, rerr
		}
		return nil, ErrInvalidRole
	}

	if account.Status != models.StatusActive {
		if rerr := s.Throttle.RecordAttempt(ctx, email, false, ip); rerr != nil {
			return nil, rerr
		}
		return nil, ErrAccountDisabled
	}

	if err := s.Throttle.RecordAttempt(ctx, email, true, ip); err != nil {
		return nil, err
	}

	stamp := models.LoginStamp(s.now())
	if err := s.Accounts.StampLastLogin(ctx, account.ID, stamp); err != nil {
		return nil, err
	}
	account.LastLogin = stamp

	token, err := s.Tokens.GenerateToken(account)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        account.Public(),
	}, nil
}

// LockoutMinutes exposes the fixed lockout duration for the 423 message.
func (s *AuthService) LockoutMinutes() int {
	return s.Throttle.LockoutMinutes()
}
