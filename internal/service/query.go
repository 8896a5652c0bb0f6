package service

import (
	"math"

	"github.com/suteetoe/sareecatalog/internal/repository"
)

// Paging is a 1-based page request
type Paging struct {
	Page    int
	PerPage int
}

// MaxPerPage caps any caller-supplied page size
const MaxPerPage = 100

// normalize clamps the request to page >= 1, fills the default page size and
// caps it at MaxPerPage
func (p Paging) normalize(defaultPerPage int) Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

func (p Paging) offset() int {
	return pageOffset(p.Page, p.PerPage)
}

// pageOffset is (page-1)*perPage, saturating at math.MaxInt so a page far
// past the end reads as empty instead of wrapping negative
func pageOffset(page, perPage int) int {
	if page <= 1 || perPage <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

func (p Paging) window() repository.Page {
	return repository.Page{Offset: p.offset(), Limit: p.PerPage}
}

// ListPage is one page of a listing plus its totals
type ListPage[T any] struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Data       []T   `json:"data"`
}

func newListPage[T any](p Paging, total int64, data []T) *ListPage[T] {
	if data == nil {
		data = []T{}
	}
	return &ListPage[T]{
		Page:       p.Page,
		PerPage:    p.PerPage,
		Total:      total,
		TotalPages: TotalPages(total, p.PerPage),
		Data:       data,
	}
}

// Default page sizes per listing
const (
	DefaultClientPerPage = 12
	DefaultAdminPerPage  = 10
)
