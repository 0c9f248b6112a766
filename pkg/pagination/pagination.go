package pagination

import "math"

// DefaultPage and DefaultLimit apply when a caller omits page parameters.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit bounds the number of rows a single page may request.
	MaxLimit = 100
)

// Meta describes one page of a list result.
type Meta struct {
	TotalItems   int64 `json:"totalItems"`
	ItemCount    int   `json:"itemCount"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
}

// New derives page metadata. currentPage and itemsPerPage are clamped to at least 1
// and totalItems to at least 0, so the result is always well defined.
func New(totalItems int64, currentPage, itemsPerPage int) Meta {
	if totalItems < 0 {
		totalItems = 0
	}
	currentPage = Normalize(currentPage, DefaultPage)
	itemsPerPage = Normalize(itemsPerPage, 1)

	perPage := int64(itemsPerPage)
	totalPages := totalItems / perPage
	if totalItems%perPage != 0 {
		totalPages++
	}

	var remaining int64
	if skipped, ok := pageStart(currentPage, itemsPerPage); ok && skipped < totalItems {
		remaining = min(totalItems-skipped, perPage)
	}

	return Meta{
		TotalItems:   totalItems,
		ItemCount:    int(remaining),
		ItemsPerPage: itemsPerPage,
		TotalPages:   int(totalPages),
		CurrentPage:  currentPage,
	}
}

// Offset returns the number of rows to skip for a page. Pages whose start cannot be
// represented saturate at math.MaxInt, which lies past any real table.
func Offset(page, limit int) int {
	skipped, ok := pageStart(Normalize(page, DefaultPage), Normalize(limit, 1))
	if !ok || skipped > math.MaxInt {
		return math.MaxInt
	}
	return int(skipped)
}

// ClampLimit applies fallback to limits below 1 and caps the rest at MaxLimit.
func ClampLimit(limit, fallback int) int {
	return min(Normalize(limit, fallback), MaxLimit)
}

// pageStart returns (page-1)*limit and false when the product overflows int64.
func pageStart(page, limit int) (int64, bool) {
	before := int64(page - 1)
	if before > math.MaxInt64/int64(limit) {
		return 0, false
	}
	return before * int64(limit), true
}

// Normalize replaces values below 1 with fallback.
func Normalize(value, fallback int) int {
	if value < 1 {
		return fallback
	}
	return value
}
