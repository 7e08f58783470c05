package services

import (
	"context"
	"errors"

	"crm-backend/internal/models"
)

// TargetStore is the slice of the target repository this service needs.
type TargetStore interface {
	Upsert(ctx context.Context, t *models.Target) error
	GetByUser(ctx context.Context, userID string) (*models.Target, error)
	List(ctx context.Context) ([]*models.Target, error)
}

// TargetService manages per-account targets. Achieved fields are owned by
// the AchievementService and are refreshed right after an upsert so a target
// created late still picks up already-assigned leads.
type TargetService struct {
	Repo         TargetStore
	Achievements *AchievementService
}

func NewTargetService(repo TargetStore, achievements *AchievementService) *TargetService {
	return &TargetService{Repo: repo, Achievements: achievements}
}

func (s *TargetService) Upsert(ctx context.Context, req *models.UpsertTargetRequest) (*models.Target, error) {
	if req.UserID == "" {
		return nil, errors.New("userId is required")
	}
	if !models.ValidPeriod(req.Period) {
		return nil, ErrInvalidPeriod
	}
	if req.SalesTarget < 0 || req.InvoiceTarget < 0 {
		return nil, ErrNegativeAmount
	}

	target := &models.Target{
		UserID:        req.UserID,
		SalesTarget:   req.SalesTarget,
		InvoiceTarget: req.InvoiceTarget,
		Period:        req.Period,
	}
	if err := s.Repo.Upsert(ctx, target); err != nil {
		return nil, err
	}

	// A target created after leads were already assigned starts with stale
	// zeros; refresh it immediately.
	s.Achievements.RecalculateAll(ctx, []string{req.UserID})

	return s.Repo.GetByUser(ctx, req.UserID)
}

func (s *TargetService) GetByUser(ctx context.Context, userID string) (*models.Target, error) {
	return s.Repo.GetByUser(ctx, userID)
}

func (s *TargetService) List(ctx context.Context) ([]*models.Target, error) {
	return s.Repo.List(ctx)
}
