package searchstate

import (
	"net/url"
	"strconv"

	"github.com/killallgit/book-search/internal/models"
)

// Query-string keys for the search state.
const (
	ParamSearchText = "searchText"
	ParamPageSize   = "pageSize"
	ParamPage       = "page"
)

// Encode renders search as query-string values.
func Encode(search models.CurrentSearch) url.Values {
	v := url.Values{}
	v.Set(ParamSearchText, search.SearchText)
	v.Set(ParamPageSize, strconv.Itoa(search.PageSize))
	v.Set(ParamPage, strconv.Itoa(search.Page))
	return v
}

// HasSearchParams reports whether q carries any of the search keys.
func HasSearchParams(q url.Values) bool {
	for _, key := range []string{ParamSearchText, ParamPageSize, ParamPage} {
		if _, ok := q[key]; ok {
			return true
		}
	}
	return false
}

// ParseQuery builds a search from query-string values. A missing or invalid
// pageSize falls back to fallbackPageSize (or models.DefaultPageSize when that
// is out of range too); a missing or invalid page falls back to 1.
func ParseQuery(q url.Values, fallbackPageSize int) models.CurrentSearch {
	if fallbackPageSize < 1 || fallbackPageSize > models.MaxPageSize {
		fallbackPageSize = models.DefaultPageSize
	}

	search := models.CurrentSearch{
		SearchText: q.Get(ParamSearchText),
		PageSize:   fallbackPageSize,
		Page:       1,
	}

	if n, err := strconv.Atoi(q.Get(ParamPageSize)); err == nil && n >= 1 && n <= models.MaxPageSize {
		search.PageSize = n
	}
	if n, err := strconv.Atoi(q.Get(ParamPage)); err == nil && n >= 1 {
		search.Page = n
	}
	return search
}

// Init seeds the holder at startup. A positive defaultPageSize publishes an
// empty search with that page size; search parameters in q then override
// it. Neither step writes back to the query string.
func (h *Holder) Init(defaultPageSize int, q url.Values) {
	if defaultPageSize > 0 {
		h.Set(&models.CurrentSearch{SearchText: "", PageSize: defaultPageSize, Page: 1})
	}
	if !HasSearchParams(q) {
		return
	}

	fallback := defaultPageSize
	if current := h.PageSize(); current > 0 {
		fallback = current
	}
	search := ParseQuery(q, fallback)
	h.Set(&search)
}
