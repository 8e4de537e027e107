package dto

// PageParams are the standard query parameters of every list endpoint.
// Sort takes "field,dir" (e.g. "expenseDate,desc"); fields are whitelisted per
// endpoint and unknown fields fall back to the default ordering.
type PageParams struct {
	Page int    `form:"page,default=0" binding:"min=0"`
	Size int    `form:"size,default=20" binding:"min=1,max=200"`
	Sort string `form:"sort"`
}

// Limit returns the page size as a query limit.
func (p PageParams) Limit() int {
	if p.Size <= 0 {
		return 20
	}
	return p.Size
}

// Offset returns the query offset for the requested page.
func (p PageParams) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return p.Page * p.Limit()
}

// Page is the envelope every list endpoint returns.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// NewPage assembles a page envelope from content and the total match count.
func NewPage[T any](content []T, params PageParams, totalElements int64) Page[T] {
	size := params.Limit()
	totalPages := int(totalElements / int64(size))
	if totalElements%int64(size) != 0 {
		totalPages++
	}
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Page:          params.Page,
		Size:          size,
		TotalPages:    totalPages,
		TotalElements: totalElements,
	}
}
