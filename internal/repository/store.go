// Package repository is the document-store abstraction used by the catalog
// services: per-entity collections with filter/sort/skip/limit/count,
// unique-field constraints and atomic increments, backed by gorm.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by key matches no row
var ErrNotFound = errors.New("record not found")

// Store wraps a gorm handle. A Store obtained inside Transaction is bound to
// that transaction.
type Store struct {
	db *gorm.DB
}

// New creates a Store over db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying gorm handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a Store bound to a single database transaction
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) with(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ilike builds a case-insensitive substring predicate for column
func ilike(db *gorm.DB, column, term string) *gorm.DB {
	if strings.EqualFold(db.Name(), "postgres") {
		return db.Where(column+" ILIKE ?", "%"+term+"%")
	}
	return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(term)+"%")
}

// IsUniqueViolation reports whether err came from a unique constraint
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// Page is an offset window
type Page struct {
	Offset int
	Limit  int
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	return db
}
