package services

import (
	"context"
	"testing"

	"crm-backend/internal/models"
	"crm-backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTargetStore struct {
	targets map[string]*models.Target
}

func newFakeTargetStore() *fakeTargetStore {
	return &fakeTargetStore{targets: make(map[string]*models.Target)}
}

func (f *fakeTargetStore) Upsert(ctx context.Context, t *models.Target) error {
	if existing, ok := f.targets[t.UserID]; ok {
		existing.SalesTarget = t.SalesTarget
		existing.InvoiceTarget = t.InvoiceTarget
		existing.Period = t.Period
		return nil
	}
	cp := *t
	f.targets[t.UserID] = &cp
	return nil
}

func (f *fakeTargetStore) GetByUser(ctx context.Context, userID string) (*models.Target, error) {
	t, ok := f.targets[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return t, nil
}

func (f *fakeTargetStore) List(ctx context.Context) ([]*models.Target, error) {
	var out []*models.Target
	for _, t := range f.targets {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTargetStore) UpdateAchieved(ctx context.Context, userID string, sales, invoice float64) (int64, error) {
	t, ok := f.targets[userID]
	if !ok {
		return 0, nil
	}
	t.SalesAchieved = sales
	t.InvoiceAchieved = invoice
	return 1, nil
}

func TestTargetUpsert_Validation(t *testing.T) {
	t.Parallel()

	store := newFakeTargetStore()
	svc := NewTargetService(store, NewAchievementService(&fakeLeadSummer{}, store))
	ctx := context.Background()

	_, err := svc.Upsert(ctx, &models.UpsertTargetRequest{Period: "monthly"})
	assert.Error(t, err, "missing userId must be rejected")

	_, err = svc.Upsert(ctx, &models.UpsertTargetRequest{UserID: "u1", Period: "weekly"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.Upsert(ctx, &models.UpsertTargetRequest{UserID: "u1", Period: "monthly", SalesTarget: -5})
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestTargetUpsert_LateTargetPicksUpAssignedLeads(t *testing.T) {
	t.Parallel()

	store := newFakeTargetStore()
	leads := &fakeLeadSummer{sums: map[string][2]float64{"u1": {1200, 700}}}
	svc := NewTargetService(store, NewAchievementService(leads, store))

	target, err := svc.Upsert(context.Background(), &models.UpsertTargetRequest{
		UserID:        "u1",
		SalesTarget:   5000,
		InvoiceTarget: 3000,
		Period:        "monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, target.SalesAchieved, "existing assigned leads must be summed on creation")
	assert.Equal(t, 700.0, target.InvoiceAchieved)
	assert.Equal(t, 5000.0, target.SalesTarget)
}

func TestTargetUpsert_UpdateKeepsAchieved(t *testing.T) {
	t.Parallel()

	store := newFakeTargetStore()
	leads := &fakeLeadSummer{sums: map[string][2]float64{"u1": {1200, 700}}}
	svc := NewTargetService(store, NewAchievementService(leads, store))
	ctx := context.Background()

	_, err := svc.Upsert(ctx, &models.UpsertTargetRequest{UserID: "u1", SalesTarget: 5000, Period: "monthly"})
	require.NoError(t, err)

	target, err := svc.Upsert(ctx, &models.UpsertTargetRequest{UserID: "u1", SalesTarget: 8000, Period: "quarterly"})
	require.NoError(t, err)
	assert.Equal(t, 8000.0, target.SalesTarget)
	assert.Equal(t, "quarterly", target.Period)
	assert.Equal(t, 1200.0, target.SalesAchieved, "achieved is recomputed, not reset")
}
