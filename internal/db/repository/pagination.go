// Package repository implements the storage layer: entity persistence
// plus the composed read queries that assemble the denormalized API
// views (owner projections, like counts, pagination totals).
package repository

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Page is an offset-based pagination request. Construct it through
// NewPage so out-of-range inputs are clamped before they reach a query.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps page to >= 1 and size to [1, maxPageSize]; a
// non-positive size falls back to the default. The clamp guarantees a
// non-negative offset for any caller input.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages returns the page count for total rows.
func (p Page) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}
