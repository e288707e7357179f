package openlibrary

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/killallgit/book-search/internal/models"
)

// NormalizeText lowercases text and collapses whitespace runs to single
// spaces, trimming the ends.
func NormalizeText(text string) string {
	lower := cases.Lower(language.Und).String(text)
	return strings.Join(strings.Fields(lower), " ")
}

// BuildQuery returns the raw query string for a search in the order
// q, page, limit. Spaces in the text are joined with '+'.
func BuildQuery(search models.CurrentSearch) string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(url.QueryEscape(NormalizeText(search.SearchText)))
	b.WriteString("&page=")
	b.WriteString(strconv.Itoa(search.Page))
	b.WriteString("&limit=")
	b.WriteString(strconv.Itoa(search.PageSize))
	return b.String()
}
