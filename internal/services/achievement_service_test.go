package services

import (
	"context"
	"errors"
	"testing"
)

type fakeLeadSummer struct {
	sums map[string][2]float64
	err  error
}

func (f *fakeLeadSummer) SumByAssignee(ctx context.Context, userID string) (float64, float64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	s := f.sums[userID]
	return s[0], s[1], nil
}

type fakeAchievedWriter struct {
	targets map[string]bool
	written map[string][2]float64
	calls   int
}

func (f *fakeAchievedWriter) UpdateAchieved(ctx context.Context, userID string, sales, invoice float64) (int64, error) {
	f.calls++
	if !f.targets[userID] {
		return 0, nil
	}
	if f.written == nil {
		f.written = make(map[string][2]float64)
	}
	f.written[userID] = [2]float64{sales, invoice}
	return 1, nil
}

func TestRecalculate_WritesSums(t *testing.T) {
	t.Parallel()

	leads := &fakeLeadSummer{sums: map[string][2]float64{"u1": {1500, 900}}}
	targets := &fakeAchievedWriter{targets: map[string]bool{"u1": true}}
	svc := NewAchievementService(leads, targets)

	matched, err := svc.Recalculate(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Recalculate error: %v", err)
	}
	if matched != 1 {
		t.Fatalf("matched = %d, want 1", matched)
	}
	if got := targets.written["u1"]; got != [2]float64{1500, 900} {
		t.Fatalf("written = %v, want [1500 900]", got)
	}
}

func TestRecalculate_NoTargetIsNoOp(t *testing.T) {
	t.Parallel()

	leads := &fakeLeadSummer{sums: map[string][2]float64{"u2": {200, 100}}}
	targets := &fakeAchievedWriter{}
	svc := NewAchievementService(leads, targets)

	matched, err := svc.Recalculate(context.Background(), "u2")
	if err != nil {
		t.Fatalf("Recalculate error: %v", err)
	}
	if matched != 0 {
		t.Fatalf("matched = %d for account without target, want 0", matched)
	}
}

func TestRecalculateAll_DedupesAndSkipsEmpty(t *testing.T) {
	t.Parallel()

	leads := &fakeLeadSummer{sums: map[string][2]float64{}}
	targets := &fakeAchievedWriter{}
	svc := NewAchievementService(leads, targets)

	svc.RecalculateAll(context.Background(), []string{"u1", "", "u2", "u1", "u2"})
	if targets.calls != 2 {
		t.Fatalf("UpdateAchieved called %d times, want 2", targets.calls)
	}
}

func TestRecalculateAll_SwallowsErrors(t *testing.T) {
	t.Parallel()

	leads := &fakeLeadSummer{err: errors.New("store down")}
	svc := NewAchievementService(leads, &fakeAchievedWriter{})

	// Must not panic or propagate; the lead mutation already committed.
	svc.RecalculateAll(context.Background(), []string{"u1"})
}

func TestRecalculate_Idempotent(t *testing.T) {
	t.Parallel()

	leads := &fakeLeadSummer{sums: map[string][2]float64{"u1": {300, 150}}}
	targets := &fakeAchievedWriter{targets: map[string]bool{"u1": true}}
	svc := NewAchievementService(leads, targets)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.Recalculate(ctx, "u1"); err != nil {
			t.Fatalf("Recalculate error: %v", err)
		}
	}

	// Recomputed from scratch each time, never accumulated.
	if got := targets.written["u1"]; got != [2]float64{300, 150} {
		t.Fatalf("written = %v after repeat runs, want [300 150]", got)
	}
}
