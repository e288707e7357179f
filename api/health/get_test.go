package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/book-search/api/types"
	"github.com/killallgit/book-search/internal/database"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name             string
		setupDeps        func() *types.Dependencies
		expectedStatus   int
		expectedDBStatus string
	}{
		{
			name: "healthy with database",
			setupDeps: func() *types.Dependencies {
				db, err := database.Initialize(database.MemoryPath, false)
				require.NoError(t, err)
				return &types.Dependencies{DB: db}
			},
			expectedStatus:   http.StatusOK,
			expectedDBStatus: "healthy",
		},
		{
			name: "healthy without database",
			setupDeps: func() *types.Dependencies {
				return &types.Dependencies{}
			},
			expectedStatus:   http.StatusOK,
			expectedDBStatus: "not configured",
		},
		{
			name: "unhealthy with closed database",
			setupDeps: func() *types.Dependencies {
				db, err := database.Initialize(database.MemoryPath, false)
				require.NoError(t, err)
				require.NoError(t, db.Close())
				return &types.Dependencies{DB: db}
			},
			expectedStatus:   http.StatusServiceUnavailable,
			expectedDBStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			deps := tt.setupDeps()
			Get(deps)(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.NotEmpty(t, response["timestamp"])

			services := response["services"].(map[string]interface{})
			db := services["database"].(map[string]interface{})
			assert.Equal(t, tt.expectedDBStatus, db["status"])

			if deps.DB != nil {
				deps.DB.Close()
			}
		})
	}
}

func TestGetDatabaseStatus_NilDependencies(t *testing.T) {
	assert.Equal(t, "not configured", getDatabaseStatus(nil)["status"])
}
