package store

// PageRequest selects one page of a sorted list.
type PageRequest struct {
	Page      int
	Limit     int
	SortField string
	SortDesc  bool
}

// Skip returns the number of items before the requested page.
func (p PageRequest) Skip() int64 {
	if p.Page < 1 {
		return 0
	}
	return int64(p.Page-1) * int64(p.Limit)
}

// Page is the paginated result envelope returned by list operations.
type Page[T any] struct {
	Docs          []T   `json:"docs"`
	TotalDocs     int64 `json:"totalDocs"`
	Limit         int   `json:"limit"`
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	PagingCounter int64 `json:"pagingCounter"`
	HasPrevPage   bool  `json:"hasPrevPage"`
	HasNextPage   bool  `json:"hasNextPage"`
	PrevPage      *int  `json:"prevPage"`
	NextPage      *int  `json:"nextPage"`
}

// NewPage computes the page metadata for docs, which is the requested page
// out of total matching items.
func NewPage[T any](docs []T, total int64, req PageRequest) Page[T] {
	if docs == nil {
		docs = []T{}
	}
	limit := req.Limit
	if limit < 1 {
		limit = 1
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	p := Page[T]{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         limit,
		Page:          page,
		TotalPages:    totalPages,
		PagingCounter: int64(page-1)*int64(limit) + 1,
		HasPrevPage:   page > 1,
		HasNextPage:   page < totalPages,
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	return p
}
