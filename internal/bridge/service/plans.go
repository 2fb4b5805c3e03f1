package service

import (
	"context"

	"github.com/nimbusott/access-bridge/internal/bridge/domain"
	"github.com/nimbusott/access-bridge/internal/bridge/upstream"
)

// PlansService resolves plan entitlements for viewers and the site's
// available plan catalogue.
type PlansService struct {
	Entitlements *upstream.EntitlementsClient
}

// GetEntitledPlans returns the plans the viewer currently holds access to,
// normalized to {id, exp}. Without a credential only free plans come back.
// Upstream rejections and failures propagate; they are never flattened into
// an empty list.
func (s *PlansService) GetEntitledPlans(ctx context.Context, authorization string) ([]domain.Plan, error) {
	entries, err := s.Entitlements.GetEntitledPlans(ctx, authorization)
	if err != nil {
		return nil, err
	}
	return normalizePlans(entries), nil
}

// GetAvailablePlans returns the plans the site offers for purchase.
func (s *PlansService) GetAvailablePlans(ctx context.Context) ([]domain.Plan, error) {
	entries, err := s.Entitlements.GetAvailablePlans(ctx)
	if err != nil {
		return nil, err
	}
	return normalizePlans(entries), nil
}

// normalizePlans flattens upstream plan records to {id, exp}, dropping
// entries missing either field. A plan without an id or expiry cannot be
// embedded in a passport.
func normalizePlans(entries []upstream.PlanEntry) []domain.Plan {
	plans := make([]domain.Plan, 0, len(entries))
	for _, entry := range entries {
		if entry.ID == nil || entry.Exp == nil {
			continue
		}
		plans = append(plans, domain.Plan{ID: *entry.ID, Exp: *entry.Exp})
	}
	return plans
}
