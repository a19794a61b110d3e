package gallery

import (
	"github.com/glimmerpics/glimmer/app/models"
)

const (
	// PageSize is the fixed number of photos per grid page.
	PageSize = 20

	// pageWindowSize is the maximum number of page buttons shown.
	pageWindowSize = 5
)

// TotalPages returns how many pages a filtered result set spans. An empty
// set still has one (empty) page.
func TotalPages(itemCount int) int {
	if itemCount <= 0 {
		return 1
	}
	return (itemCount + PageSize - 1) / PageSize
}

// ClampPage coerces a requested page number into the valid 1-based range.
func ClampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Paginate returns the 1-based page slice of the given photo sequence.
// Out-of-range pages clamp to the valid range.
func Paginate(photos []models.Photo, page int) []models.Photo {
	page = ClampPage(page, TotalPages(len(photos)))

	start := (page - 1) * PageSize
	if start >= len(photos) {
		return []models.Photo{}
	}
	end := start + PageSize
	if end > len(photos) {
		end = len(photos)
	}
	return append([]models.Photo(nil), photos[start:end]...)
}

// PageWindow returns the page numbers to render as buttons: at most five,
// centered on the current page where possible, clamped to the valid range.
func PageWindow(current, total int) []int {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - pageWindowSize/2
	if start+pageWindowSize-1 > total {
		start = total - pageWindowSize + 1
	}
	if start < 1 {
		start = 1
	}

	window := []int{}
	for p := start; p <= total && len(window) < pageWindowSize; p++ {
		window = append(window, p)
	}
	return window
}
