package search

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/book-search/api/types"
	"github.com/killallgit/book-search/internal/models"
	"github.com/killallgit/book-search/internal/services/searchstate"
)

// Get handles one-shot book searches
// @Summary      Search for books
// @Description  Fetches one page of Open Library results. Failed or timed out fetches return an empty result with a warning.
// @Tags         search
// @Produce      json
// @Param        searchText query string true  "Search text"
// @Param        pageSize   query int    false "Page size (1-100)"
// @Param        page       query int    false "1-based page"
// @Success      200 {object} types.SearchResponse "Search results"
// @Failure      400 {object} types.ErrorResponse "Bad request - missing search text"
// @Failure      429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure      503 {object} types.ErrorResponse "Search service not available"
// @Router       /api/v1/search [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps == nil || deps.Fetcher == nil {
			types.SendServiceUnavailable(c, "Search service not available")
			return
		}

		cs := searchstate.ParseQuery(c.Request.URL.Query(), deps.DefaultPageSize())
		if strings.TrimSpace(cs.SearchText) == "" {
			types.SendBadRequest(c, "Search text cannot be empty.")
			return
		}

		var warning string
		result := deps.Fetcher.Fetch(c.Request.Context(), cs, notifier(func(msg string) {
			warning = msg
		}))

		message := "Search results retrieved successfully"
		if warning != "" {
			message = "Search failed, showing no results"
		}

		c.JSON(http.StatusOK, types.SearchResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: message,
			},
			Search:    cs,
			Result:    result,
			Paginator: models.NewPaginator(cs, result),
			Warning:   warning,
		})
	}
}

type notifier func(string)

func (n notifier) Notify(_ context.Context, message string) {
	n(message)
}
