package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Info is the build information reported by the version endpoint
type Info struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// NewInfo describes a running build
func NewInfo(version, commit string) Info {
	return Info{
		Name:        "Book Search",
		Version:     version,
		Commit:      commit,
		Description: "Debounced book search over the Open Library API",
		Status:      "running",
	}
}

// Get handles version requests
// @Summary      Version
// @Description  Returns build information
// @Tags         system
// @Produce      json
// @Success      200 {object} version.Info
// @Router       /version [get]
func Get(version, commit string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, NewInfo(version, commit))
	}
}
