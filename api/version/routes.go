package version

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers version routes
func RegisterRoutes(engine *gin.Engine, version, commit string) {
	engine.GET("/version", Get(version, commit))
}
