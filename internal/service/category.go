package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/repository"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"github.com/suteetoe/sareecatalog/pkg/metrics"
	"go.uber.org/zap"
)

// Category sort keys. total_saree_count is derived from membership rows.
const (
	SortByName       = "name"
	SortByTotalCount = "total_saree_count"
)

// CategorySummary is a category with its member count
type CategorySummary struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TotalSareeCount int64           `json:"total_saree_count"`
	Admin           model.AdminMeta `json:"admin"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CategoryListQuery filters and orders the admin category listing
type CategoryListQuery struct {
	Search string
	SortBy string
	Order  string
	Paging
}

// CategoryMembers is a category's member list in membership order
type CategoryMembers struct {
	CategoryID   string        `json:"category_id"`
	CategoryName string        `json:"category_name"`
	Total        int           `json:"total"`
	Data         []model.Saree `json:"data"`
}

// PickerQuery drives the selected-first picker. A nil SelectedIDs means the
// category's current members.
type PickerQuery struct {
	Search      string
	Variety     string
	Status      string
	SelectedIDs []string
	Paging
}

// PickerResult is one picker page plus the selected ids that survived the
// filter, in caller order
type PickerResult struct {
	Page        int           `json:"page"`
	PerPage     int           `json:"per_page"`
	Total       int64         `json:"total"`
	TotalPages  int           `json:"total_pages"`
	SelectedIDs []string      `json:"selected_ids"`
	Data        []model.Saree `json:"data"`
}

// CategoryService manages categories and their ordered membership lists
type CategoryService struct {
	store     *repository.Store
	sortLimit int
}

// NewCategoryService creates a CategoryService. sortLimit is the row count
// above which an in-memory derived sort is reported as oversized.
func NewCategoryService(store *repository.Store, sortLimit int) *CategoryService {
	return &CategoryService{store: store, sortLimit: sortLimit}
}

// Create adds a category stamped with the acting admin
func (s *CategoryService) Create(ctx context.Context, admin *model.AdminUser, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation("Name is required")
	}
	taken, err := s.store.CategoryNameTaken(ctx, name, "")
	if err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if taken {
		return nil, ErrConflict("Category already exists")
	}

	c := &model.Category{Name: name, Admin: model.NewAdminMeta(admin)}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict("Category already exists")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	metrics.RecordMutation("category", "create")
	logger.FromContext(ctx).Info("Category created", zap.String("category_id", c.ID), zap.String("name", c.Name))
	return c, nil
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, admin *model.AdminUser, id, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation("Name is required")
	}
	c, err := s.find(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.store.CategoryNameTaken(ctx, name, c.ID)
	if err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if taken {
		return nil, ErrConflict("Category already exists")
	}

	c.Name = name
	c.Admin = model.NewAdminMeta(admin)
	if err := s.store.SaveCategory(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict("Category already exists")
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	metrics.RecordMutation("category", "update")
	logger.FromContext(ctx).Info("Category updated", zap.String("category_id", c.ID))
	return c, nil
}

// Delete removes a category with its memberships and category invites
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		err := tx.DeleteCategory(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound("Category not found")
		}
		return err
	})
	if err != nil {
		return err
	}

	metrics.RecordMutation("category", "delete")
	logger.FromContext(ctx).Info("Category deleted", zap.String("category_id", id))
	return nil
}

// SetSarees replaces the membership list wholesale. Unknown saree ids are
// dropped; the stored list is returned.
func (s *CategoryService) SetSarees(ctx context.Context, id string, sareeIDs []string) ([]string, error) {
	var kept []string
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := s.find(ctx, tx, id); err != nil {
			return err
		}
		var err error
		kept, err = tx.ReplaceCategorySarees(ctx, id, sareeIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutation("category", "set_sarees")
	logger.FromContext(ctx).Info("Category sarees updated",
		zap.String("category_id", id),
		zap.Int("requested", len(sareeIDs)),
		zap.Int("stored", len(kept)))
	return kept, nil
}

// RemoveSaree drops one saree from the membership list. The saree must
// exist and be a member.
func (s *CategoryService) RemoveSaree(ctx context.Context, id, sareeID string) error {
	if _, err := s.find(ctx, s.store, id); err != nil {
		return err
	}
	if _, err := s.store.FindSareeByID(ctx, sareeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound("Saree not found")
		}
		return err
	}
	if err := s.store.RemoveCategorySaree(ctx, id, sareeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrValidation("Saree not in category")
		}
		return err
	}

	metrics.RecordMutation("category", "remove_saree")
	logger.FromContext(ctx).Info("Saree removed from category",
		zap.String("category_id", id),
		zap.String("saree_id", sareeID))
	return nil
}

// Members returns a category's sarees in membership order
func (s *CategoryService) Members(ctx context.Context, id string) (*CategoryMembers, error) {
	c, err := s.find(ctx, s.store, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.CategorySarees(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("load category sarees: %w", err)
	}
	return &CategoryMembers{
		CategoryID:   c.ID,
		CategoryName: c.Name,
		Total:        len(rows),
		Data:         rows,
	}, nil
}

// List pages categories. Sorting by name happens in the store; sorting by
// member count loads every match, sorts in memory and slices the page, so
// its cost grows with the number of matching categories.
func (s *CategoryService) List(ctx context.Context, q CategoryListQuery) (*ListPage[CategorySummary], error) {
	p := q.Paging.normalize(DefaultAdminPerPage)
	desc := strings.EqualFold(q.Order, "desc")

	if q.SortBy != SortByTotalCount {
		rows, total, err := s.store.ListCategories(ctx, repository.CategoryQuery{
			Search: q.Search,
			Desc:   desc,
			Page:   p.window(),
		})
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		summaries, err := s.summarize(ctx, rows)
		if err != nil {
			return nil, err
		}
		return newListPage(p, total, summaries), nil
	}

	rows, total, err := s.store.ListCategories(ctx, repository.CategoryQuery{Search: q.Search})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	metrics.ObserveDerivedSort("category", len(rows))
	if s.sortLimit > 0 && len(rows) > s.sortLimit {
		logger.FromContext(ctx).Warn("Derived sort over oversized result set",
			zap.Int("rows", len(rows)),
			zap.Int("limit", s.sortLimit))
	}

	summaries, err := s.summarize(ctx, rows)
	if err != nil {
		return nil, err
	}
	window := SortByDerived(summaries, func(c CategorySummary) int64 {
		return c.TotalSareeCount
	}, desc, p.offset(), p.PerPage)
	return newListPage(p, total, window), nil
}

// Picker lists sarees with the selected ones first in caller order and the
// rest after them by name
func (s *CategoryService) Picker(ctx context.Context, id string, q PickerQuery) (*PickerResult, error) {
	p := q.Paging.normalize(DefaultAdminPerPage)
	if _, err := s.find(ctx, s.store, id); err != nil {
		return nil, err
	}

	selectedIDs := q.SelectedIDs
	if selectedIDs == nil {
		ids, err := s.store.CategorySareeIDs(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load category members: %w", err)
		}
		selectedIDs = ids
	}
	selectedIDs = uniqueNonEmpty(selectedIDs)

	base := repository.SareeFilter{Search: q.Search, Status: q.Status}
	if q.Variety != "" {
		base.Varieties = []string{q.Variety}
	}

	selected := []model.Saree{}
	if len(selectedIDs) > 0 {
		f := base
		f.IncludeIDs = selectedIDs
		rows, err := s.store.FindSarees(ctx, f, "", repository.Page{})
		if err != nil {
			return nil, fmt.Errorf("load selected sarees: %w", err)
		}
		selected = rows
	}

	remaining := base
	remaining.ExcludeIDs = selectedIDs
	remainingTotal, err := s.store.CountSarees(ctx, remaining)
	if err != nil {
		return nil, fmt.Errorf("count remaining sarees: %w", err)
	}

	page, err := PaginateSelectedFirst(selectedIDs, selected, remainingTotal,
		func(offset, limit int) ([]model.Saree, error) {
			return s.store.FindSarees(ctx, remaining, repository.OrderByName,
				repository.Page{Offset: offset, Limit: limit})
		}, p.Page, p.PerPage)
	if err != nil {
		return nil, fmt.Errorf("load remaining sarees: %w", err)
	}

	kept := make([]string, 0, len(selected))
	for _, r := range OrderByIDs(selectedIDs, selected) {
		kept = append(kept, r.ID)
	}
	return &PickerResult{
		Page:        p.Page,
		PerPage:     p.PerPage,
		Total:       page.Total,
		TotalPages:  page.TotalPages,
		SelectedIDs: kept,
		Data:        page.Items,
	}, nil
}

func (s *CategoryService) find(ctx context.Context, store *repository.Store, id string) (*model.Category, error) {
	c, err := store.FindCategoryByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound("Category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) summarize(ctx context.Context, rows []model.Category) ([]CategorySummary, error) {
	ids := make([]string, 0, len(rows))
	for _, c := range rows {
		ids = append(ids, c.ID)
	}
	counts, err := s.store.CountCategoryMembers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count category members: %w", err)
	}
	out := make([]CategorySummary, 0, len(rows))
	for _, c := range rows {
		out = append(out, CategorySummary{
			ID:              c.ID,
			Name:            c.Name,
			TotalSareeCount: counts[c.ID],
			Admin:           c.Admin,
			CreatedAt:       c.CreatedAt,
		})
	}
	return out, nil
}
