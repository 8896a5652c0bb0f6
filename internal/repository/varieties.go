package repository

import (
	"context"

	"github.com/suteetoe/sareecatalog/internal/model"
	"gorm.io/gorm"
)

// VarietyQuery selects and orders varieties
type VarietyQuery struct {
	Search string
	// SortBy is a stored column: name or total_saree_count
	SortBy string
	Desc   bool
	Page   Page
}

var varietySortColumns = map[string]string{
	"name":              "name",
	"total_saree_count": "total_saree_count",
}

// CreateVariety inserts a variety
func (s *Store) CreateVariety(ctx context.Context, v *model.Variety) error {
	return s.with(ctx).Create(v).Error
}

// SaveVariety persists every field of v
func (s *Store) SaveVariety(ctx context.Context, v *model.Variety) error {
	return s.with(ctx).Save(v).Error
}

// FindVarietyByID loads a variety by id
func (s *Store) FindVarietyByID(ctx context.Context, id string) (*model.Variety, error) {
	var v model.Variety
	if err := s.with(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

// FindVarietyByName loads a variety by its unique name
func (s *Store) FindVarietyByName(ctx context.Context, name string) (*model.Variety, error) {
	var v model.Variety
	if err := s.with(ctx).Where("name = ?", name).First(&v).Error; err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

// VarietyNameTaken reports whether another variety already uses name
func (s *Store) VarietyNameTaken(ctx context.Context, name, exceptID string) (bool, error) {
	var count int64
	db := s.with(ctx).Model(&model.Variety{}).Where("name = ?", name)
	if exceptID != "" {
		db = db.Where("id <> ?", exceptID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// AdjustVarietyCount atomically adds delta to the named variety's counter.
// It returns the number of rows touched; zero means the variety is gone.
func (s *Store) AdjustVarietyCount(ctx context.Context, name string, delta int64) (int64, error) {
	res := s.with(ctx).Model(&model.Variety{}).
		Where("name = ?", name).
		UpdateColumn("total_saree_count", gorm.Expr("total_saree_count + ?", delta))
	return res.RowsAffected, res.Error
}

// RenameSareeVariety moves every saree carrying oldName to newName
func (s *Store) RenameSareeVariety(ctx context.Context, oldName, newName string) (int64, error) {
	res := s.with(ctx).Model(&model.Saree{}).
		Where("variety = ?", oldName).
		UpdateColumn("variety", newName)
	return res.RowsAffected, res.Error
}

// ListVarieties returns one page of varieties and the total match count.
// Both sort keys are stored columns so ordering happens in the database.
func (s *Store) ListVarieties(ctx context.Context, q VarietyQuery) ([]model.Variety, int64, error) {
	db := s.with(ctx).Model(&model.Variety{})
	if q.Search != "" {
		db = ilike(db, "name", q.Search)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := varietySortColumns[q.SortBy]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}

	var rows []model.Variety
	err := q.Page.apply(db.Order(col + " " + dir).Order("id ASC")).Find(&rows).Error
	return rows, total, err
}

// CountVarieties returns the number of varieties
func (s *Store) CountVarieties(ctx context.Context) (int64, error) {
	var count int64
	err := s.with(ctx).Model(&model.Variety{}).Count(&count).Error
	return count, err
}

// RecountVarieties recomputes every total_saree_count from the sarees table
func (s *Store) RecountVarieties(ctx context.Context) (int64, error) {
	res := s.with(ctx).Exec(
		"UPDATE varieties SET total_saree_count = (SELECT COUNT(*) FROM sarees WHERE sarees.variety = varieties.name)",
	)
	return res.RowsAffected, res.Error
}
