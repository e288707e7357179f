// Package searchform implements the search form actions on top of a
// session's state holder.
package searchform

import (
	"github.com/killallgit/book-search/internal/models"
	"github.com/killallgit/book-search/internal/services/searchstate"
	"github.com/killallgit/book-search/pkg/errors"
)

// Submit publishes a new search for text, starting again at page 1 and
// keeping the current page size. Only empty text is rejected here.
func Submit(h *searchstate.Holder, text string) error {
	if text == "" {
		return errors.ValidationError("searchText", "Search text cannot be empty.")
	}

	pageSize := h.PageSize()
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}

	h.Submit(models.CurrentSearch{
		SearchText: text,
		PageSize:   pageSize,
		Page:       1,
	})
	return nil
}

// ChangePage publishes the current text with a new page and page size.
func ChangePage(h *searchstate.Holder, page, pageSize int) error {
	if page < 1 {
		return errors.ValidationError("page", "Page must be 1 or greater.").
			WithDetail("value", page)
	}
	if pageSize < 1 || pageSize > models.MaxPageSize {
		return errors.ValidationError("pageSize", "Page size must be between 1 and 100.").
			WithDetail("value", pageSize)
	}

	h.Submit(models.CurrentSearch{
		SearchText: h.SearchText(),
		PageSize:   pageSize,
		Page:       page,
	})
	return nil
}

// FieldValue is the text the search input shows.
func FieldValue(h *searchstate.Holder) string {
	return h.SearchText()
}
