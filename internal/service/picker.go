package service

import (
	"sort"

	"github.com/suteetoe/sareecatalog/internal/model"
)

// PickerPage is one page of a selected-first listing
type PickerPage struct {
	Items      []model.Saree
	Total      int64
	TotalPages int
}

// RemainingFetcher reads a window of the non-selected records in name order
type RemainingFetcher func(offset, limit int) ([]model.Saree, error)

// PaginateSelectedFirst merges the selected records (in selectedIDs order)
// ahead of the remaining records and cuts page out of the combined
// sequence. selected holds whatever the store returned for the selected ids
// under the active filter; ids with no record are dropped. remainingTotal
// is the size of the remaining set that fetch reads from.
func PaginateSelectedFirst(
	selectedIDs []string,
	selected []model.Saree,
	remainingTotal int64,
	fetch RemainingFetcher,
	page, perPage int,
) (PickerPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	ordered := OrderByIDs(selectedIDs, selected)
	nSelected := len(ordered)
	total := int64(nSelected) + remainingTotal

	out := PickerPage{
		Items:      []model.Saree{},
		Total:      total,
		TotalPages: TotalPages(total, perPage),
	}

	offset := pageOffset(page, perPage)
	if offset < nSelected {
		end := offset + perPage
		if end > nSelected {
			end = nSelected
		}
		out.Items = append(out.Items, ordered[offset:end]...)

		if fill := perPage - len(out.Items); fill > 0 && remainingTotal > 0 {
			rest, err := fetch(0, fill)
			if err != nil {
				return PickerPage{}, err
			}
			out.Items = append(out.Items, rest...)
		}
		return out, nil
	}

	skip := offset - nSelected
	if int64(skip) >= remainingTotal {
		return out, nil
	}
	rest, err := fetch(skip, perPage)
	if err != nil {
		return PickerPage{}, err
	}
	out.Items = append(out.Items, rest...)
	return out, nil
}

// OrderByIDs returns records reordered to follow ids. Records whose id is
// not listed and ids with no record are dropped; a repeated id appears once.
func OrderByIDs(ids []string, records []model.Saree) []model.Saree {
	byID := make(map[string]model.Saree, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	ordered := make([]model.Saree, 0, len(records))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			continue
		}
		ordered = append(ordered, r)
		delete(byID, id)
	}
	return ordered
}

// TotalPages is ceil(total/perPage) with a floor of one page
func TotalPages(total int64, perPage int) int {
	if perPage < 1 || total <= 0 {
		return 1
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		return 1
	}
	return pages
}

// SortByDerived orders items by a computed key with a stable sort, so items
// with equal keys keep their incoming relative order, and returns the
// window [offset, offset+limit). A non-positive limit returns everything
// from offset on.
func SortByDerived[T any](items []T, key func(T) int64, desc bool, offset, limit int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return key(sorted[i]) > key(sorted[j])
		}
		return key(sorted[i]) < key(sorted[j])
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(sorted) {
		return []T{}
	}
	end := len(sorted)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return sorted[offset:end]
}
