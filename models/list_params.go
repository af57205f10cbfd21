package models

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gorm.io/gorm"
)

// ListParams carries pagination and simple equality filters parsed
// from a list endpoint's query string.
type ListParams struct {
	Page     int
	PageSize int
	Filters  map[string]string
}

// ListResponse is the envelope every list endpoint returns.
type ListResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// ParseListParams reads page/page_size plus any whitelisted filter
// columns from the request query string.
func ParseListParams(r *http.Request, filterCols ...string) (*ListParams, error) {
	p := &ListParams{Page: 1, PageSize: defaultPageSize, Filters: map[string]string{}}

	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", v)
		}
		p.Page = n
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid page_size %q", v)
		}
		p.PageSize = n
	}
	for _, col := range filterCols {
		if v := q.Get(col); v != "" {
			p.Filters[col] = v
		}
	}
	return p, p.Validate()
}

func (p *ListParams) Validate() error {
	if p.Page < 1 {
		return errors.New("page must be >= 1")
	}
	if p.PageSize < 1 || p.PageSize > maxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d", maxPageSize)
	}
	return nil
}

// Apply adds the filters, ordering and paging window to a query.
func (p *ListParams) Apply(db *gorm.DB) *gorm.DB {
	for col, val := range p.Filters {
		db = db.Where(col+" = ?", val)
	}
	return db.Order("created_at DESC").
		Offset((p.Page - 1) * p.PageSize).
		Limit(p.PageSize)
}

// Envelope wraps already-fetched rows with paging metadata.
func (p *ListParams) Envelope(data interface{}, total int64) *ListResponse {
	pages := int(total) / p.PageSize
	if int(total)%p.PageSize != 0 {
		pages++
	}
	return &ListResponse{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: pages,
	}
}
