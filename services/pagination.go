package services

import (
	"strconv"
)

const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Cursor feeds only serve these page sizes; any other requested size falls
// back to the default instead of failing.
var cursorPageSizes = map[int]bool{5: true, 10: true}

// NormalizeCursorLimit clamps a cursor-mode limit to the supported set.
func NormalizeCursorLimit(limit int) int {
	if cursorPageSizes[limit] {
		return limit
	}
	return DefaultPageSize
}

// PageParams is a validated page/limit pair for offset pagination.
type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageParams validates raw query values. Empty strings take the
// defaults; anything non-numeric or out of range is a ValidationError naming
// the parameter and the violated bound.
func ParsePageParams(pageStr, limitStr string) (PageParams, error) {
	params := PageParams{Page: MinPage, Limit: DefaultPageSize}

	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return params, newValidationError("page", "must be a number")
		}
		params.Page = page
	}
	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return params, newValidationError("limit", "must be a number")
		}
		params.Limit = limit
	}

	if params.Page < MinPage {
		return params, newValidationError("page", "must be at least %d", MinPage)
	}
	if params.Limit < 1 {
		return params, newValidationError("limit", "must be at least 1")
	}
	if params.Limit > MaxPageSize {
		return params, newValidationError("limit", "cannot exceed %d", MaxPageSize)
	}

	return params, nil
}

// PageMeta is the offset-pagination envelope returned alongside list items.
type PageMeta struct {
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	TotalCount  int64 `json:"total_count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	Limit       int   `json:"limit"`
}

func NewPageMeta(params PageParams, totalCount int64) PageMeta {
	return PageMeta{
		TotalPages:  int((totalCount + int64(params.Limit) - 1) / int64(params.Limit)),
		CurrentPage: params.Page,
		TotalCount:  totalCount,
		HasNext:     int64(params.Page)*int64(params.Limit) < totalCount,
		HasPrevious: params.Page > MinPage,
		Limit:       params.Limit,
	}
}
