// Package pagination computes page numbers, item ranges and navigation state
// for the post listing.
package pagination

import (
	"math"
	"strconv"
)

const (
	// DefaultLimit is the page size used when none is requested.
	DefaultLimit = 5
	// MaxLimit caps the page size a client can ask for.
	MaxLimit = 100
	// MaxPage is the highest page Parse returns. It keeps page*limit and
	// page+1 from overflowing.
	MaxPage = math.MaxInt32 / MaxLimit

	compactMaxPages = 3
	fullMaxPages    = 7
)

// LimitOptions are the page sizes offered by the page-size selector.
var LimitOptions = []int{3, 5, 10, 15, 20}

// Item is a single label in the page-number strip: either a page or an ellipsis.
type Item struct {
	Page     int
	Ellipsis bool
}

func page(n int) Item { return Item{Page: n} }

var ellipsis = Item{Ellipsis: true}

// Parse reads page and limit query values. Missing, malformed or
// non-positive values fall back to page 1 and defaultLimit. Pages above
// MaxPage are clamped to it.
func Parse(pageStr, limitStr string, defaultLimit int) (int, int) {
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}
	p, err := strconv.Atoi(pageStr)
	if err != nil || p < 1 {
		p = 1
	}
	if p > MaxPage {
		p = MaxPage
	}
	l, err := strconv.Atoi(limitStr)
	if err != nil || l < 1 {
		l = defaultLimit
	}
	if l > MaxLimit {
		l = MaxLimit
	}
	return p, l
}

// TotalPages returns how many pages of size limit are needed for total items.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Numbers returns the page labels to show for current out of totalPages.
// The compact variant shows at most three numbered pages, the full one at
// most seven; gaps are condensed to an ellipsis.
func Numbers(current, totalPages int, compact bool) []Item {
	maxPages := fullMaxPages
	if compact {
		maxPages = compactMaxPages
	}

	if totalPages <= maxPages {
		items := make([]Item, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			items = append(items, page(i))
		}
		return items
	}

	n := totalPages
	if compact {
		switch {
		case current <= 2:
			return []Item{page(1), page(2), page(3), ellipsis, page(n)}
		case current >= n-1:
			return []Item{page(1), ellipsis, page(n - 2), page(n - 1), page(n)}
		default:
			return []Item{page(1), ellipsis, page(current), ellipsis, page(n)}
		}
	}

	switch {
	case current <= 4:
		return []Item{page(1), page(2), page(3), page(4), page(5), ellipsis, page(n)}
	case current > n-4:
		return []Item{page(1), ellipsis, page(n - 4), page(n - 3), page(n - 2), page(n - 1), page(n)}
	default:
		return []Item{page(1), ellipsis, page(current - 1), page(current), page(current + 1), ellipsis, page(n)}
	}
}

// Range is the 1-based span of items shown on a page, e.g. "6-10 of 23".
type Range struct {
	Start int
	End   int
	Total int
	// Valid is false when there is nothing meaningful to show, such as an
	// empty listing or a page past the end.
	Valid bool
}

// RangeOf computes the item range for page of size limit over total items.
// A page past the last one yields an invalid, zero range.
func RangeOf(page, limit, total int) Range {
	r := Range{Total: total}
	if total <= 0 || page < 1 || limit < 1 || page > TotalPages(total, limit) {
		return r
	}
	r.Start = (page-1)*limit + 1
	r.End = min(page*limit, total)
	r.Valid = true
	return r
}

// Navigation holds the enabled state of the previous/next controls.
type Navigation struct {
	HasPrev bool
	HasNext bool
	Prev    int
	Next    int
}

// Nav returns the previous/next state for current out of totalPages.
func Nav(current, totalPages int) Navigation {
	onlyOne := totalPages == 1
	return Navigation{
		HasPrev: !onlyOne && current > 1,
		HasNext: !onlyOne && current < totalPages,
		Prev:    current - 1,
		Next:    current + 1,
	}
}
