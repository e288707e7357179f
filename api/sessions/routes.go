package sessions

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/book-search/api/types"
)

// RegisterRoutes registers session routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, submitMiddleware ...gin.HandlerFunc) {
	router.POST("", Create(deps))
	router.GET("/:id", Get(deps))
	router.DELETE("/:id", Delete(deps))
	router.GET("/:id/events", Events(deps))

	writes := router.Group("/:id")
	writes.Use(submitMiddleware...)
	writes.PUT("/search", PutSearch(deps))
	writes.PUT("/page", PutPage(deps))
}
