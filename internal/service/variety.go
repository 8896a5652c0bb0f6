package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/repository"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"github.com/suteetoe/sareecatalog/pkg/metrics"
	"go.uber.org/zap"
)

// VarietyListQuery filters and orders the admin variety listing
type VarietyListQuery struct {
	Search string
	SortBy string
	Order  string
	Paging
}

// VarietyService manages varieties. Sarees refer to a variety by name, so a
// rename carries every matching saree along.
type VarietyService struct {
	store *repository.Store
}

// NewVarietyService creates a VarietyService
func NewVarietyService(store *repository.Store) *VarietyService {
	return &VarietyService{store: store}
}

// Create adds a variety stamped with the acting admin
func (s *VarietyService) Create(ctx context.Context, admin *model.AdminUser, name string) (*model.Variety, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation("Name is required")
	}
	taken, err := s.store.VarietyNameTaken(ctx, name, "")
	if err != nil {
		return nil, fmt.Errorf("check variety name: %w", err)
	}
	if taken {
		return nil, ErrConflict("Variety already exists")
	}

	v := &model.Variety{Name: name, Admin: model.NewAdminMeta(admin)}
	if err := s.store.CreateVariety(ctx, v); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict("Variety already exists")
		}
		return nil, fmt.Errorf("create variety: %w", err)
	}

	metrics.RecordMutation("variety", "create")
	logger.FromContext(ctx).Info("Variety created", zap.String("variety_id", v.ID), zap.String("name", v.Name))
	return v, nil
}

// Update renames a variety and moves every saree carrying the old name to
// the new one in the same transaction
func (s *VarietyService) Update(ctx context.Context, admin *model.AdminUser, id, name string) (*model.Variety, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation("Name is required")
	}

	var (
		v       *model.Variety
		oldName string
		moved   int64
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		v, err = tx.FindVarietyByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound("Variety not found")
		}
		if err != nil {
			return err
		}

		oldName = v.Name
		if name != oldName {
			taken, err := tx.VarietyNameTaken(ctx, name, v.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrConflict("Variety already exists")
			}
		}

		v.Name = name
		v.Admin = model.NewAdminMeta(admin)
		if err := tx.SaveVariety(ctx, v); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrConflict("Variety already exists")
			}
			return err
		}
		if name != oldName {
			moved, err = tx.RenameSareeVariety(ctx, oldName, name)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutation("variety", "update")
	logger.FromContext(ctx).Info("Variety updated",
		zap.String("variety_id", v.ID),
		zap.String("old_name", oldName),
		zap.String("name", v.Name),
		zap.Int64("sarees_moved", moved))
	return v, nil
}

// List pages varieties sorted by name or total_saree_count, both stored
func (s *VarietyService) List(ctx context.Context, q VarietyListQuery) (*ListPage[model.Variety], error) {
	p := q.Paging.normalize(DefaultAdminPerPage)
	sortBy := q.SortBy
	if sortBy != "total_saree_count" {
		sortBy = "name"
	}
	rows, total, err := s.store.ListVarieties(ctx, repository.VarietyQuery{
		Search: q.Search,
		SortBy: sortBy,
		Desc:   strings.EqualFold(q.Order, "desc"),
		Page:   p.window(),
	})
	if err != nil {
		return nil, fmt.Errorf("list varieties: %w", err)
	}
	return newListPage(p, total, rows), nil
}

// Recount rebuilds every total_saree_count from the sarees table
func (s *VarietyService) Recount(ctx context.Context) (int64, error) {
	n, err := s.store.RecountVarieties(ctx)
	if err != nil {
		metrics.RecordVarietyRecount("error")
		return 0, fmt.Errorf("recount varieties: %w", err)
	}
	metrics.RecordVarietyRecount("ok")
	return n, nil
}
