package utils

import "strconv"

// PageSize is the fixed number of items per listing page.
const PageSize = 10

// Pagination carries the navigation metadata of a listing page.
type Pagination struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ParsePage parses a 1-based page number from its query representation.
// Missing or malformed values mean the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate clamps the requested page into the valid range for total items and
// returns the SQL offset of that page together with its metadata. An empty
// listing still has one (empty) page. The last page holds total mod PageSize
// items, or a full PageSize when total divides evenly.
func Paginate(page int, total int64) (int, Pagination) {
	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return (page - 1) * PageSize, Pagination{
		Page:        page,
		PageSize:    PageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
