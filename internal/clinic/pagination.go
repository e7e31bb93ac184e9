package clinic

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Page is the pagination metadata every list endpoint returns.
type Page struct {
	TotalCount      int  `json:"totalCount"`
	PageSize        int  `json:"pageSize"`
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Paginate slices items down to the requested page. Page and size fall back to
// the defaults when zero or negative.
func Paginate[T any](items []T, page, size int) ([]T, Page) {
	if page <= 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(items)
	totalPages := (total + size - 1) / size

	meta := Page{
		TotalCount:      total,
		PageSize:        size,
		CurrentPage:     page,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1 && total > 0,
	}

	start := (page - 1) * size
	if start >= total {
		return []T{}, meta
	}
	end := start + size
	if end > total {
		end = total
	}
	return items[start:end], meta
}
