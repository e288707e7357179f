package history

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/book-search/api/types"
	historysvc "github.com/killallgit/book-search/internal/services/history"
	"github.com/killallgit/book-search/pkg/errors"
)

// Get lists recent searches
// @Summary      Recent searches
// @Description  Lists completed fetches, newest first
// @Tags         history
// @Produce      json
// @Param        limit query int false "Maximum entries (1-200)" default(20)
// @Success      200 {object} types.HistoryResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/history [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := types.ParseIntQuery(c, "limit", historysvc.DefaultLimit)
		if !ok {
			return
		}
		if limit < 1 || limit > historysvc.MaxLimit {
			types.SendBadRequest(c, "Limit must be between 1 and 200")
			return
		}

		records, err := deps.History.Recent(c.Request.Context(), limit)
		if err != nil {
			types.SendError(c, errors.DatabaseError("list history", err))
			return
		}

		entries := types.FromRecords(records)
		c.JSON(http.StatusOK, types.HistoryResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "History retrieved successfully",
			},
			Searches: entries,
			Count:    len(entries),
		})
	}
}
