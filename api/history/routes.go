package history

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/book-search/api/types"
)

// RegisterRoutes registers history routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
}
