package service

import (
	"context"
	"fmt"

	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/repository"
)

// DashboardStats are the admin dashboard counters
type DashboardStats struct {
	Categories      int64 `json:"categories"`
	Sarees          int64 `json:"sarees"`
	PublishedSarees int64 `json:"published_sarees"`
	Varieties       int64 `json:"varieties"`
	ActiveInvites   int64 `json:"active_invites"`
}

// DashboardService aggregates catalog counts
type DashboardService struct {
	store *repository.Store
}

// NewDashboardService creates a DashboardService
func NewDashboardService(store *repository.Store) *DashboardService {
	return &DashboardService{store: store}
}

// Stats counts every catalog entity
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var (
		stats DashboardStats
		err   error
	)
	if stats.Categories, err = s.store.CountCategories(ctx); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if stats.Sarees, err = s.store.CountSarees(ctx, repository.SareeFilter{}); err != nil {
		return nil, fmt.Errorf("count sarees: %w", err)
	}
	if stats.PublishedSarees, err = s.store.CountSarees(ctx, repository.SareeFilter{Status: model.StatusPublished}); err != nil {
		return nil, fmt.Errorf("count published sarees: %w", err)
	}
	if stats.Varieties, err = s.store.CountVarieties(ctx); err != nil {
		return nil, fmt.Errorf("count varieties: %w", err)
	}
	if stats.ActiveInvites, err = s.store.CountActiveInvites(ctx); err != nil {
		return nil, fmt.Errorf("count invites: %w", err)
	}
	return &stats, nil
}
