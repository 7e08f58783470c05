package services

import (
	"context"
	"log"
)

// LeadSummer totals the financial fields of one account's assigned leads.
type LeadSummer interface {
	SumByAssignee(ctx context.Context, userID string) (price float64, billed float64, err error)
}

// AchievedWriter applies recomputed achieved fields to an existing target.
type AchievedWriter interface {
	UpdateAchieved(ctx context.Context, userID string, sales, invoice float64) (int64, error)
}

// AchievementService keeps each account's achieved aggregates equal to the
// sum over its currently assigned leads. Values are recomputed from a full
// re-scan on every trigger, never incremented.
type AchievementService struct {
	Leads   LeadSummer
	Targets AchievedWriter
}

func NewAchievementService(leads LeadSummer, targets AchievedWriter) *AchievementService {
	return &AchievementService{Leads: leads, Targets: targets}
}

// Recalculate refreshes one account's achieved fields. If the account has no
// target record yet the write matches nothing and the refresh is a silent
// no-op; the matched count is returned so callers can observe which case ran.
func (s *AchievementService) Recalculate(ctx context.Context, userID string) (int64, error) {
	sales, invoice, err := s.Leads.SumByAssignee(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.Targets.UpdateAchieved(ctx, userID, sales, invoice)
}

// RecalculateAll refreshes every account in the set, once per account.
// Failures are logged and never propagated: the triggering lead mutation is
// already committed, so a stale aggregate is an accepted consistency gap
// until the next trigger.
func (s *AchievementService) RecalculateAll(ctx context.Context, userIDs []string) {
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.Recalculate(ctx, id); err != nil {
			log.Printf("[Achievement] recalculation failed for user %s: %v", id, err)
		}
	}
}
