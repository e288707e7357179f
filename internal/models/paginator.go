package models

import "strconv"

// Paginator describes the pagination control for a rendered result.
type Paginator struct {
	Length    int `json:"length"`
	PageSize  int `json:"pageSize"`
	PageIndex int `json:"pageIndex"` // 0-based
}

// NewPaginator derives the paginator state for result as produced by search.
func NewPaginator(search CurrentSearch, result SearchResult) Paginator {
	pageIndex := search.Page - 1
	if pageIndex < 0 {
		pageIndex = 0
	}
	return Paginator{
		Length:    result.NumFound,
		PageSize:  search.PageSize,
		PageIndex: pageIndex,
	}
}

// TotalPages returns the number of pages needed to show Length items.
func (p Paginator) TotalPages() int {
	if p.PageSize <= 0 || p.Length <= 0 {
		return 0
	}
	return (p.Length + p.PageSize - 1) / p.PageSize
}

// HasPrevious reports whether a page before the current one exists.
func (p Paginator) HasPrevious() bool {
	return p.PageIndex > 0
}

// HasNext reports whether a page after the current one exists.
func (p Paginator) HasNext() bool {
	return p.PageIndex+1 < p.TotalPages()
}

// RangeLabel renders "1 – 10 of 42" the way the paginator shows it.
func (p Paginator) RangeLabel() string {
	if p.Length == 0 || p.PageSize <= 0 {
		return "0 of " + strconv.Itoa(p.Length)
	}
	start := p.PageIndex*p.PageSize + 1
	end := start + p.PageSize - 1
	if end > p.Length {
		end = p.Length
	}
	if start > p.Length {
		start = p.Length
	}
	return strconv.Itoa(start) + " – " + strconv.Itoa(end) + " of " + strconv.Itoa(p.Length)
}
