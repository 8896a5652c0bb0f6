package repository

import (
	"context"

	"github.com/suteetoe/sareecatalog/internal/model"
)

// CategoryQuery selects categories by name
type CategoryQuery struct {
	Search string
	Desc   bool
	Page   Page
}

// CreateCategory inserts a category
func (s *Store) CreateCategory(ctx context.Context, c *model.Category) error {
	return s.with(ctx).Create(c).Error
}

// SaveCategory persists every field of c
func (s *Store) SaveCategory(ctx context.Context, c *model.Category) error {
	return s.with(ctx).Save(c).Error
}

// FindCategoryByID loads a category by id
func (s *Store) FindCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	if err := s.with(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// FindCategoriesByIDs loads the categories whose ids are listed. Unknown ids
// are absent from the result.
func (s *Store) FindCategoriesByIDs(ctx context.Context, ids []string) ([]model.Category, error) {
	rows := []model.Category{}
	if len(ids) == 0 {
		return rows, nil
	}
	err := s.with(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

// CategoryNameTaken reports whether another category already uses name
func (s *Store) CategoryNameTaken(ctx context.Context, name, exceptID string) (bool, error) {
	var count int64
	db := s.with(ctx).Model(&model.Category{}).Where("name = ?", name)
	if exceptID != "" {
		db = db.Where("id <> ?", exceptID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// DeleteCategory removes a category together with its membership rows and
// the category-invite rows that point at it
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	db := s.with(ctx)
	if err := db.Where("category_id = ?", id).Delete(&model.CategorySaree{}).Error; err != nil {
		return err
	}
	if err := db.Where("category_id = ?", id).Delete(&model.CategoryInviteToken{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&model.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CategorySarees returns the members of a category in membership order
func (s *Store) CategorySarees(ctx context.Context, categoryID string) ([]model.Saree, error) {
	rows := []model.Saree{}
	err := s.with(ctx).Model(&model.Saree{}).
		Joins("JOIN category_sarees ON category_sarees.saree_id = sarees.id").
		Where("category_sarees.category_id = ?", categoryID).
		Order("category_sarees.position ASC").
		Find(&rows).Error
	return rows, err
}

// CategorySareeIDs returns the member ids of a category in membership order
func (s *Store) CategorySareeIDs(ctx context.Context, categoryID string) ([]string, error) {
	ids := []string{}
	err := s.with(ctx).Model(&model.CategorySaree{}).
		Where("category_id = ?", categoryID).
		Order("position ASC").
		Pluck("saree_id", &ids).Error
	return ids, err
}

// ReplaceCategorySarees swaps the whole membership list of a category for
// the supplied ids, in the supplied order. Ids that match no saree and
// repeated ids are dropped. The stored list is returned.
func (s *Store) ReplaceCategorySarees(ctx context.Context, categoryID string, sareeIDs []string) ([]string, error) {
	db := s.with(ctx)

	existing := map[string]struct{}{}
	if len(sareeIDs) > 0 {
		var found []string
		if err := db.Model(&model.Saree{}).Where("id IN ?", sareeIDs).Pluck("id", &found).Error; err != nil {
			return nil, err
		}
		for _, id := range found {
			existing[id] = struct{}{}
		}
	}

	rows := make([]model.CategorySaree, 0, len(existing))
	kept := make([]string, 0, len(existing))
	for _, id := range sareeIDs {
		if _, ok := existing[id]; !ok {
			continue
		}
		delete(existing, id)
		rows = append(rows, model.CategorySaree{CategoryID: categoryID, SareeID: id, Position: len(rows)})
		kept = append(kept, id)
	}

	if err := db.Where("category_id = ?", categoryID).Delete(&model.CategorySaree{}).Error; err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if err := db.Create(&rows).Error; err != nil {
			return nil, err
		}
	}
	return kept, nil
}

// RemoveCategorySaree drops one membership row; ErrNotFound if the saree was
// not a member
func (s *Store) RemoveCategorySaree(ctx context.Context, categoryID, sareeID string) error {
	res := s.with(ctx).
		Where("category_id = ? AND saree_id = ?", categoryID, sareeID).
		Delete(&model.CategorySaree{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCategories returns the categories matching q ordered by name. With a
// zero q.Page every match is returned.
func (s *Store) ListCategories(ctx context.Context, q CategoryQuery) ([]model.Category, int64, error) {
	db := s.with(ctx).Model(&model.Category{})
	if q.Search != "" {
		db = ilike(db, "name", q.Search)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	rows := []model.Category{}
	err := q.Page.apply(db.Order("name " + dir).Order("id ASC")).Find(&rows).Error
	return rows, total, err
}

// CountCategoryMembers returns the membership size of each listed category.
// Categories with no members are absent from the map.
func (s *Store) CountCategoryMembers(ctx context.Context, categoryIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		CategoryID string
		Total      int64
	}
	err := s.with(ctx).Model(&model.CategorySaree{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IN ?", categoryIDs).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.CategoryID] = r.Total
	}
	return counts, nil
}

// CountCategories returns the number of categories
func (s *Store) CountCategories(ctx context.Context) (int64, error) {
	var count int64
	err := s.with(ctx).Model(&model.Category{}).Count(&count).Error
	return count, err
}
