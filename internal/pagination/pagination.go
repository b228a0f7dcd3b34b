package pagination

import (
	"gorm.io/gorm"
)

const (
	// DefaultPageSize applies when the caller omits pageSize.
	DefaultPageSize = 10
	// MaxPageSize caps pageSize regardless of what the caller asks for.
	MaxPageSize = 50
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	PageNumber int `form:"pageNumber" binding:"omitempty,min=1"`
	PageSize   int `form:"pageSize" binding:"omitempty,min=1"`
}

// Defaults fills in default values when pageNumber or pageSize are not
// provided and clamps pageSize to MaxPageSize.
func (p *PageRequest) Defaults() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// PagedResult wraps one page of items with metadata derived from the total
// row count. It is computed, never stored.
type PagedResult[T any] struct {
	Items           []T   `json:"items"`
	PageNumber      int   `json:"pageNumber"`
	PageSize        int   `json:"pageSize"`
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// NewPagedResult builds the envelope for items. totalPages is
// ceil(totalCount/pageSize) and 0 when there are no rows.
func NewPagedResult[T any](items []T, totalCount int64, pageNumber, pageSize int) PagedResult[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if pageSize > 0 && totalCount > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}

	return PagedResult[T]{
		Items:           items,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
