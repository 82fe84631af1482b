package helpers

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"eventsapi/internal/domain"
)

// Pagination query parameter defaults and limits. Pages are zero-based.
const (
	DefaultPage     = 0
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePageable reads page, size and sort from the query string. Invalid page or size
// values fall back to defaults and size is capped at MaxPageSize. Each sort parameter is
// "property[,property...][,asc|desc]" and may be repeated. Property names are not
// checked here.
func ParsePageable(r *http.Request) domain.Pageable {
	q := r.URL.Query()
	size := DefaultPageSize
	if s := q.Get("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			size = min(v, MaxPageSize)
		}
	}
	page := DefaultPage
	if s := q.Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			page = min(v, maxPage(size))
		}
	}
	return domain.Pageable{Page: page, Size: size, Sort: parseSort(q["sort"])}
}

// maxPage is the largest page whose offset and next-page offset both fit in an int.
func maxPage(size int) int {
	return math.MaxInt/size - 1
}

func parseSort(params []string) []domain.SortOrder {
	var orders []domain.SortOrder
	for _, param := range params {
		parts := strings.Split(param, ",")
		dir := domain.SortAsc
		if d, ok := domain.ParseSortDirection(parts[len(parts)-1]); ok {
			dir = d
			parts = parts[:len(parts)-1]
		}
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				orders = append(orders, domain.SortOrder{Property: p, Direction: dir})
			}
		}
	}
	return orders
}

// PageMetadata is the HAL "page" object of a paged collection.
// swagger:model PageMetadata
type PageMetadata struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// NewPageMetadata builds PageMetadata from a page.
func NewPageMetadata[T any](p *domain.Page[T]) PageMetadata {
	return PageMetadata{
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
		Number:        p.Number,
	}
}

// PageLinks returns self plus first/prev/next/last navigation links for p. first and last
// are only present when there is more than one page to move between.
func PageLinks[T any](r *http.Request, path string, pageable domain.Pageable, p *domain.Page[T]) Links {
	base := BaseURL(r) + path
	href := func(number int) string {
		return base + "?" + pageQuery(number, pageable).Encode()
	}

	links := Links{}
	navigable := p.HasPrevious() || p.HasNext()
	if navigable {
		links.Add("first", href(0))
	}
	if p.HasPrevious() {
		links.Add("prev", href(p.Number-1))
	}
	links.Add("self", href(p.Number))
	if p.HasNext() {
		links.Add("next", href(p.Number+1))
	}
	if navigable {
		links.Add("last", href(max(p.TotalPages()-1, 0)))
	}
	return links
}

func pageQuery(number int, pageable domain.Pageable) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(number))
	q.Set("size", strconv.Itoa(pageable.Size))
	for _, o := range pageable.Sort {
		q.Add("sort", o.Property+","+string(o.Direction))
	}
	return q
}
