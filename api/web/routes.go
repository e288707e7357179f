package web

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/book-search/api/types"
)

// RegisterRoutes registers the page and its assets
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies) {
	engine.GET("/", Index(deps))
	engine.StaticFS("/static", Static())
}
