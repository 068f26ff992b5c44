// Package paging slices filtered records into pages and computes the page
// button window shown under the transaction table.
package paging

import "github.com/tirasundara/momo-dashboard/internal/domain"

const (
	// DefaultPageSize is the number of records shown per page
	DefaultPageSize = 100

	// windowSize is the number of consecutive page buttons shown
	windowSize = 5
)

// Page is one slice of a filtered record set
type Page struct {
	Items      []domain.Record
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// IsEmpty reports whether the underlying record set had no records
func (p Page) IsEmpty() bool {
	return p.TotalItems == 0
}

// HasPrev reports whether a previous page exists
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a following page exists
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// TotalPages returns ceil(n/size), 0 for an empty set
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns the requested page of records. Page numbers outside
// [1, TotalPages] are clamped to the nearest valid page, so a page past the
// end yields the last page rather than an empty slice. A non-positive size
// uses DefaultPageSize.
func Paginate(records []domain.Record, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := TotalPages(len(records), size)
	number := Clamp(page, total)

	p := Page{
		Items:      []domain.Record{},
		Number:     number,
		Size:       size,
		TotalItems: len(records),
		TotalPages: total,
	}

	if total == 0 {
		return p
	}

	start := (number - 1) * size
	end := min(start+size, len(records))
	p.Items = records[start:end]

	return p
}

// Clamp restricts page to [1, totalPages]. It returns 1 when there are no pages.
func Clamp(page, totalPages int) int {
	if totalPages < 1 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
