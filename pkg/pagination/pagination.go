package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 25
	// MaxPerPage caps how many rows any list query can request.
	MaxPerPage = 100
)

// Params holds page/per-page inputs parsed from a request query.
type Params struct {
	Page    int
	PerPage int
}

// FromQuery parses pagination inputs from query values, clamping out-of-range
// values instead of rejecting them.
func FromQuery(q url.Values) Params {
	p := Params{Page: 1, PerPage: DefaultPerPage}
	if raw := q.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Page = v
		}
	}
	if raw := q.Get("perPage"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.PerPage = v
		}
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit returns the row limit for the current page.
func (p Params) Limit() int {
	if p.PerPage <= 0 {
		return DefaultPerPage
	}
	return p.PerPage
}

// Meta describes a page of results for response envelopes.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// MetaFor computes the response metadata for the given params and row count.
func MetaFor(p Params, total int64) Meta {
	pages := int(total) / p.Limit()
	if int(total)%p.Limit() != 0 {
		pages++
	}
	return Meta{
		Page:       p.Page,
		PerPage:    p.Limit(),
		Total:      total,
		TotalPages: pages,
	}
}
