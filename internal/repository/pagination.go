package repository

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination describes one page of a list result. TotalCount comes from a
// separate count query against the same filter, so under concurrent writes
// it can disagree with the returned page; that is accepted.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// ClampPage floors page to 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit floors limit to 1.
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	return limit
}

// Paginate computes the page summary for a total count.
func Paginate(page, limit int, total int64) Pagination {
	page = ClampPage(page)
	limit = ClampLimit(limit)
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
