package models

// DefaultPageSize is used when neither the session nor the configuration
// provides one.
const DefaultPageSize = 10

// MaxPageSize bounds page sizes accepted from URLs and pagination requests.
const MaxPageSize = 100

// CurrentSearch is one search intent: the query text, the page size and the
// 1-based page number. It is a value type; replace it, never mutate it in place.
type CurrentSearch struct {
	SearchText string `json:"searchText" example:"dune"`
	PageSize   int    `json:"pageSize" example:"10"`
	Page       int    `json:"page" example:"1"`
}

// Ptr returns a pointer to a copy of s.
func (s CurrentSearch) Ptr() *CurrentSearch {
	return &s
}

// SameSearch reports whether a and b are structurally equal, treating two
// absent searches as equal.
func SameSearch(a, b *CurrentSearch) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Doc is a single book in a search result, mirroring the remote API shape.
type Doc struct {
	Title           string   `json:"title" example:"Dune"`
	AuthorName      []string `json:"author_name" example:"Frank Herbert"`
	CoverEditionKey string   `json:"cover_edition_key" example:"OL26242482M"`
}

// SearchResult mirrors the remote search response.
type SearchResult struct {
	NumFound int   `json:"num_found" example:"5"`
	Docs     []Doc `json:"docs"`
}

// EmptyResult is the fallback substituted for failed fetches.
func EmptyResult() SearchResult {
	return SearchResult{NumFound: 0, Docs: []Doc{}}
}
