package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/book-search/api/health"
	"github.com/killallgit/book-search/api/history"
	"github.com/killallgit/book-search/api/search"
	"github.com/killallgit/book-search/api/sessions"
	"github.com/killallgit/book-search/api/types"
	"github.com/killallgit/book-search/api/version"
	"github.com/killallgit/book-search/api/web"
	_ "github.com/killallgit/book-search/docs/swagger"
	"github.com/killallgit/book-search/pkg/errors"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, build BuildInfo, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		return errors.New(errors.ErrCodeConfigInvalid, "handler dependencies are required")
	}

	// Register public routes (no rate limiting)
	web.RegisterRoutes(engine, deps)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, build.Version, build.Commit)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Every search request reaches Open Library, so searches share one
	// per-client limit.
	var searchLimit []gin.HandlerFunc
	if deps.Config != nil && deps.Config.RateLimiting.Enabled {
		searchLimit = append(searchLimit, PerClientRateLimit(
			rateLimiters, cleanupStop, cleanupInitialized,
			deps.Config.RateLimiting.SearchRPS,
			deps.Config.RateLimiting.SearchBurst,
		))
	}

	searchGroup := v1.Group("/search")
	searchGroup.Use(searchLimit...)
	search.RegisterRoutes(searchGroup, deps)

	if deps.Sessions != nil {
		sessions.RegisterRoutes(v1.Group("/sessions"), deps, searchLimit...)
	}

	if deps.History != nil {
		history.RegisterRoutes(v1.Group("/history"), deps)
	}

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
