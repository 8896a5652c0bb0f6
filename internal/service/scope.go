package service

import (
	"context"

	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/repository"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"go.uber.org/zap"
)

// ScopeResolver turns an optional client token into the saree visibility
// filter. Only active category invites narrow the scope; global tokens and
// unknown tokens leave it at every published saree.
type ScopeResolver struct {
	store *repository.Store
}

// NewScopeResolver creates a ScopeResolver
func NewScopeResolver(store *repository.Store) *ScopeResolver {
	return &ScopeResolver{store: store}
}

// Resolve returns the base filter for client reads. It never fails closed:
// a lookup error is logged and the published-only scope is returned.
func (r *ScopeResolver) Resolve(ctx context.Context, token string) repository.SareeFilter {
	filter := repository.SareeFilter{Status: model.StatusPublished}
	if token == "" {
		return filter
	}

	rows, err := r.store.FindActiveCategoryInvites(ctx, token, "")
	if err != nil {
		logger.FromContext(ctx).Warn("Scope lookup failed, using published scope", zap.Error(err))
		return filter
	}
	if len(rows) == 0 {
		return filter
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CategoryID)
	}
	filter.CategoryIDs = ids
	return filter
}
