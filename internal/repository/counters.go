package repository

import (
	"context"

	"github.com/suteetoe/sareecatalog/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NextSequence atomically increments the named counter and returns the new
// value. The row lock taken by the UPDATE serializes concurrent callers.
func (s *Store) NextSequence(ctx context.Context, name string) (int64, error) {
	var next int64
	err := s.with(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Counter{Name: name}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Counter{}).
			Where("name = ?", name).
			UpdateColumn("seq", gorm.Expr("seq + ?", 1)).Error; err != nil {
			return err
		}
		var counter model.Counter
		if err := tx.Where("name = ?", name).First(&counter).Error; err != nil {
			return err
		}
		next = counter.Seq
		return nil
	})
	return next, err
}
