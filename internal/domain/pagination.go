package domain

import (
	"math"
	"strings"
)

// SortDirection is ASC or DESC.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseSortDirection accepts asc/desc in any case; anything else is ASC.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC":
		return SortAsc, true
	case "DESC":
		return SortDesc, true
	}
	return SortAsc, false
}

// SortOrder orders a listing by one property.
type SortOrder struct {
	Property  string
	Direction SortDirection
}

// Pageable holds zero-based offset pagination and sort parameters for list queries.
type Pageable struct {
	Page int
	Size int
	Sort []SortOrder
}

// Offset returns the row offset for the current page.
func (p Pageable) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of a sorted listing plus the totals needed for navigation.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int
}

// NewPage builds a Page for content fetched with pageable.
func NewPage[T any](content []T, pageable Pageable, total int) *Page[T] {
	if content == nil {
		content = []T{}
	}
	return &Page[T]{Content: content, Number: pageable.Page, Size: pageable.Size, TotalElements: total}
}

// TotalPages is ceiling(TotalElements / Size); 0 when Size is 0.
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalElements + p.Size - 1) / p.Size
}

// HasPrevious reports whether a page precedes this one.
func (p *Page[T]) HasPrevious() bool {
	return p.Number > 0
}

// HasNext reports whether a page follows this one.
func (p *Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}
