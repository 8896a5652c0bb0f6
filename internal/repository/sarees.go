package repository

import (
	"context"

	"github.com/suteetoe/sareecatalog/internal/model"
	"gorm.io/gorm"
)

// SareeFilter is a conjunction of optional predicates over sarees. Zero
// values mean "no predicate", except the category and include lists which
// distinguish nil (unrestricted) from empty (matches nothing).
type SareeFilter struct {
	Search    string
	Varieties []string
	MinPrice  *float64
	MaxPrice  *float64
	Status    string
	// CategoryIDs restricts results to members of any listed category
	CategoryIDs []string
	IncludeIDs  []string
	ExcludeIDs  []string
}

// SareeOrder is a stored-column ordering for saree listings
type SareeOrder string

const (
	OrderByName           SareeOrder = "name ASC, id ASC"
	OrderByLastEditedDesc SareeOrder = "last_edited_at DESC, id ASC"
)

func (f SareeFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Search != "" {
		db = ilike(db, "sarees.name", f.Search)
	}
	switch len(f.Varieties) {
	case 0:
	case 1:
		db = db.Where("sarees.variety = ?", f.Varieties[0])
	default:
		db = db.Where("sarees.variety IN ?", f.Varieties)
	}
	if f.MinPrice != nil {
		db = db.Where("sarees.min_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("sarees.max_price <= ?", *f.MaxPrice)
	}
	if f.Status != "" {
		db = db.Where("sarees.status = ?", f.Status)
	}
	if f.CategoryIDs != nil {
		if len(f.CategoryIDs) == 0 {
			return db.Where("1 = 0")
		}
		members := db.Session(&gorm.Session{NewDB: true}).
			Model(&model.CategorySaree{}).
			Select("saree_id").
			Where("category_id IN ?", f.CategoryIDs)
		db = db.Where("sarees.id IN (?)", members)
	}
	if f.IncludeIDs != nil {
		if len(f.IncludeIDs) == 0 {
			return db.Where("1 = 0")
		}
		db = db.Where("sarees.id IN ?", f.IncludeIDs)
	}
	if len(f.ExcludeIDs) > 0 {
		db = db.Where("sarees.id NOT IN ?", f.ExcludeIDs)
	}
	return db
}

// CreateSaree inserts a saree
func (s *Store) CreateSaree(ctx context.Context, saree *model.Saree) error {
	return s.with(ctx).Create(saree).Error
}

// SaveSaree persists every field of saree
func (s *Store) SaveSaree(ctx context.Context, saree *model.Saree) error {
	return s.with(ctx).Save(saree).Error
}

// FindSareeByID loads a saree by id
func (s *Store) FindSareeByID(ctx context.Context, id string) (*model.Saree, error) {
	return s.FindSaree(ctx, id, SareeFilter{})
}

// FindSaree loads a saree by id only if it also satisfies f
func (s *Store) FindSaree(ctx context.Context, id string, f SareeFilter) (*model.Saree, error) {
	var saree model.Saree
	db := f.apply(s.with(ctx).Model(&model.Saree{})).Where("sarees.id = ?", id)
	if err := db.First(&saree).Error; err != nil {
		return nil, notFound(err)
	}
	return &saree, nil
}

// DeleteSaree removes a saree and its category memberships
func (s *Store) DeleteSaree(ctx context.Context, id string) error {
	db := s.with(ctx)
	if err := db.Where("saree_id = ?", id).Delete(&model.CategorySaree{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&model.Saree{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSarees returns one page of sarees matching f and the total match count
func (s *Store) ListSarees(ctx context.Context, f SareeFilter, order SareeOrder, page Page) ([]model.Saree, int64, error) {
	total, err := s.CountSarees(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.Saree{}, 0, nil
	}
	rows, err := s.FindSarees(ctx, f, order, page)
	return rows, total, err
}

// FindSarees returns the sarees matching f without counting
func (s *Store) FindSarees(ctx context.Context, f SareeFilter, order SareeOrder, page Page) ([]model.Saree, error) {
	db := f.apply(s.with(ctx).Model(&model.Saree{}))
	if order != "" {
		db = db.Order(string(order))
	}
	rows := []model.Saree{}
	err := page.apply(db).Find(&rows).Error
	return rows, err
}

// CountSarees counts the sarees matching f
func (s *Store) CountSarees(ctx context.Context, f SareeFilter) (int64, error) {
	var count int64
	err := f.apply(s.with(ctx).Model(&model.Saree{})).Count(&count).Error
	return count, err
}

// DistinctVarieties returns the sorted distinct non-empty variety names
// among sarees matching f
func (s *Store) DistinctVarieties(ctx context.Context, f SareeFilter) ([]string, error) {
	names := []string{}
	err := f.apply(s.with(ctx).Model(&model.Saree{})).
		Where("sarees.variety <> ''").
		Distinct().
		Order("sarees.variety ASC").
		Pluck("sarees.variety", &names).Error
	return names, err
}
