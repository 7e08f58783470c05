package services

import (
	"context"
	"time"

	"crm-backend/internal/config"
	"crm-backend/internal/models"
)

// ThrottleStore is the slice of the throttle repository this service needs.
type ThrottleStore interface {
	Get(ctx context.Context, email string) (*models.LoginThrottle, error)
	Upsert(ctx context.Context, rec *models.LoginThrottle) error
	Clear(ctx context.Context, email string) error
}

// LoginThrottleService slows credential guessing: after MaxAttempts
// consecutive failures an identity is locked for LockoutMinutes, whether or
// not an account with that email exists.
type LoginThrottleService struct {
	Repo        ThrottleStore
	MaxAttempts int
	Lockout     time.Duration

	now func() time.Time
}

func NewLoginThrottleService(repo ThrottleStore, cfg *config.Config) *LoginThrottleService {
	return &LoginThrottleService{
		Repo:        repo,
		MaxAttempts: cfg.Throttle.MaxAttempts,
		Lockout:     time.Duration(cfg.Throttle.LockoutMinutes) * time.Minute,
		now:         time.Now,
	}
}

// RecordAttempt upserts the identity's throttle record. Success resets the
// counter and clears any lockout; failure increments the counter and, at the
// threshold, starts the lockout window. Absence of a prior record is a fresh
// zero-state record.
func (s *LoginThrottleService) RecordAttempt(ctx context.Context, email string, success bool, ip string) error {
	rec, err := s.Repo.Get(ctx, email)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = &models.LoginThrottle{Email: email}
	}

	now := s.now()
	rec.LastAttempt = now
	rec.LastIP = ip

	if success {
		rec.FailedAttempts = 0
		rec.LockedUntil = nil
	} else {
		rec.FailedAttempts++
		if rec.FailedAttempts >= s.MaxAttempts {
			until := now.Add(s.Lockout)
			rec.LockedUntil = &until
		}
	}

	return s.Repo.Upsert(ctx, rec)
}

// IsLocked reports whether the identity is currently locked out. A lockout
// whose window has passed is cleared as a side effect, covering the gap
// before the store's own TTL reaping removes the record.
func (s *LoginThrottleService) IsLocked(ctx context.Context, email string) (bool, error) {
	rec, err := s.Repo.Get(ctx, email)
	if err != nil {
		return false, err
	}
	if rec == nil || rec.LockedUntil == nil {
		return false, nil
	}

	if rec.LockedUntil.After(s.now()) {
		return true, nil
	}

	// Lockout expired but the record outlived the TTL sweep.
	if err := s.Repo.Clear(ctx, email); err != nil {
		return false, err
	}
	return false, nil
}

// LockoutMinutes is the fixed policy duration reported to locked-out callers.
func (s *LoginThrottleService) LockoutMinutes() int {
	return int(s.Lockout / time.Minute)
}
