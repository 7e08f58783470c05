package services

import (
	"context"
	"testing"
	"time"

	"crm-backend/internal/config"
	"crm-backend/internal/models"
)

type fakeThrottleStore struct {
	recs map[string]*models.LoginThrottle
}

func newFakeThrottleStore() *fakeThrottleStore {
	return &fakeThrottleStore{recs: make(map[string]*models.LoginThrottle)}
}

func (f *fakeThrottleStore) Get(ctx context.Context, email string) (*models.LoginThrottle, error) {
	rec, ok := f.recs[email]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeThrottleStore) Upsert(ctx context.Context, rec *models.LoginThrottle) error {
	cp := *rec
	f.recs[rec.Email] = &cp
	return nil
}

func (f *fakeThrottleStore) Clear(ctx context.Context, email string) error {
	delete(f.recs, email)
	return nil
}

func newThrottleService(store ThrottleStore, at time.Time) *LoginThrottleService {
	cfg := &config.Config{}
	cfg.Throttle.MaxAttempts = 5
	cfg.Throttle.LockoutMinutes = 30
	svc := NewLoginThrottleService(store, cfg)
	svc.now = func() time.Time { return at }
	return svc
}

func TestRecordAttempt_LocksAtThreshold(t *testing.T) {
	t.Parallel()

	store := newFakeThrottleStore()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newThrottleService(store, base)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if err := svc.RecordAttempt(ctx, "a@b.com", false, "10.0.0.1"); err != nil {
			t.Fatalf("RecordAttempt error: %v", err)
		}
		locked, err := svc.IsLocked(ctx, "a@b.com")
		if err != nil {
			t.Fatalf("IsLocked error: %v", err)
		}
		if locked {
			t.Fatalf("locked after %d failures, want lockout only at 5", i+1)
		}
	}

	if err := svc.RecordAttempt(ctx, "a@b.com", false, "10.0.0.1"); err != nil {
		t.Fatalf("RecordAttempt error: %v", err)
	}
	locked, err := svc.IsLocked(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("IsLocked error: %v", err)
	}
	if !locked {
		t.Fatal("not locked after 5 consecutive failures")
	}

	rec := store.recs["a@b.com"]
	if rec.LockedUntil == nil {
		t.Fatal("locked_until not set")
	}
	if want := base.Add(30 * time.Minute); !rec.LockedUntil.Equal(want) {
		t.Fatalf("locked_until = %v, want %v", rec.LockedUntil, want)
	}
}

func TestRecordAttempt_SuccessResetsCounter(t *testing.T) {
	t.Parallel()

	store := newFakeThrottleStore()
	svc := newThrottleService(store, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if err := svc.RecordAttempt(ctx, "a@b.com", false, ""); err != nil {
			t.Fatalf("RecordAttempt error: %v", err)
		}
	}
	if err := svc.RecordAttempt(ctx, "a@b.com", true, ""); err != nil {
		t.Fatalf("RecordAttempt error: %v", err)
	}

	rec := store.recs["a@b.com"]
	if rec.FailedAttempts != 0 {
		t.Fatalf("failed_attempts = %d after success, want 0", rec.FailedAttempts)
	}
	if rec.LockedUntil != nil {
		t.Fatal("locked_until survived a successful attempt")
	}

	// The counter restarted, so four more failures still do not lock.
	for i := 0; i < 4; i++ {
		if err := svc.RecordAttempt(ctx, "a@b.com", false, ""); err != nil {
			t.Fatalf("RecordAttempt error: %v", err)
		}
	}
	locked, err := svc.IsLocked(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("IsLocked error: %v", err)
	}
	if locked {
		t.Fatal("locked after 4 failures following a reset")
	}
}

func TestIsLocked_ExpiredWindowClears(t *testing.T) {
	t.Parallel()

	store := newFakeThrottleStore()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newThrottleService(store, base)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := svc.RecordAttempt(ctx, "a@b.com", false, ""); err != nil {
			t.Fatalf("RecordAttempt error: %v", err)
		}
	}

	// 31 minutes later the window has passed.
	svc.now = func() time.Time { return base.Add(31 * time.Minute) }
	locked, err := svc.IsLocked(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("IsLocked error: %v", err)
	}
	if locked {
		t.Fatal("still locked after the window expired")
	}
	if _, ok := store.recs["a@b.com"]; ok {
		t.Fatal("expired throttle record not cleared")
	}
}

func TestIsLocked_UnknownIdentity(t *testing.T) {
	t.Parallel()

	svc := newThrottleService(newFakeThrottleStore(), time.Now())
	locked, err := svc.IsLocked(context.Background(), "nobody@b.com")
	if err != nil {
		t.Fatalf("IsLocked error: %v", err)
	}
	if locked {
		t.Fatal("unknown identity reported locked")
	}
}

func TestLockoutMinutes(t *testing.T) {
	t.Parallel()

	svc := newThrottleService(newFakeThrottleStore(), time.Now())
	if got := svc.LockoutMinutes(); got != 30 {
		t.Fatalf("LockoutMinutes = %d, want 30", got)
	}
}
