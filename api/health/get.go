package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/book-search/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Reports service health, the history database and open sessions
// @Tags         system
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Failure      503 {object} types.HealthResponse
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		response := types.HealthResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Service is healthy",
			},
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Services:  map[string]interface{}{},
		}

		db := getDatabaseStatus(deps)
		response.Services["database"] = db
		if db["status"] == "unhealthy" {
			status = http.StatusServiceUnavailable
			response.Status = types.StatusError
			response.Message = "Database is unavailable"
		}

		if deps != nil && deps.Sessions != nil {
			response.Services["sessions"] = gin.H{"active": deps.Sessions.Count()}
		}

		c.JSON(status, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy"}
}
