package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/loomline/admin-api/internal/models"
)

// SummaryStore computes the dashboard aggregates.
type SummaryStore interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
}

// SummaryCache caches dashboard aggregates between recomputes.
type SummaryCache interface {
	Get(ctx context.Context) (*models.DashboardSummary, error)
	Set(ctx context.Context, data *models.DashboardSummary) error
}

// DashboardService serves dashboard aggregates with a short-lived cache in
// front of the live queries. Cache failures degrade to a direct read.
type DashboardService struct {
	store SummaryStore
	cache SummaryCache
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(store SummaryStore, cache SummaryCache) *DashboardService {
	return &DashboardService{store: store, cache: cache}
}

// Summary returns the dashboard aggregates, from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Dashboard cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	summary, err := s.store.Summary(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			log.Warn().Err(err).Msg("Dashboard cache write failed")
		}
	}
	return summary, nil
}
