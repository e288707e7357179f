package types

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/killallgit/book-search/internal/models"
	"github.com/killallgit/book-search/pkg/config"
	"github.com/killallgit/book-search/pkg/errors"
)

func TestDependencies_DefaultPageSize(t *testing.T) {
	var nilDeps *Dependencies
	assert.Zero(t, nilDeps.DefaultPageSize())
	assert.Zero(t, (&Dependencies{}).DefaultPageSize())

	deps := &Dependencies{Config: &config.Config{Search: config.SearchConfig{DefaultPageSize: 25}}}
	assert.Equal(t, 25, deps.DefaultPageSize())
}

func TestSendError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        errors.ValidationError("searchText", "Search text cannot be empty."),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION",
			wantMsg:    "Search text cannot be empty.",
		},
		{
			name:       "not found",
			err:        errors.NotFound("session", "abc"),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "session not found",
		},
		{
			name:       "plain error",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			SendError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestParseIntQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		target string
		want   int
		wantOK bool
	}{
		{name: "absent", target: "/", want: 7, wantOK: true},
		{name: "present", target: "/?limit=3", want: 3, wantOK: true},
		{name: "invalid", target: "/?limit=many", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tt.target, nil)

			got, ok := ParseIntQuery(c, "limit", 7)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestFromRecords(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	entries := FromRecords([]models.SearchRecord{{
		Model:      gorm.Model{ID: 7, CreatedAt: created},
		SearchText: "dune",
		PageSize:   10,
		Page:       1,
		NumFound:   5,
		DurationMs: 42,
	}})

	require.Len(t, entries, 1)
	assert.Equal(t, HistoryEntry{
		ID:         7,
		SearchText: "dune",
		PageSize:   10,
		Page:       1,
		NumFound:   5,
		DurationMs: 42,
		CreatedAt:  created.Unix(),
	}, entries[0])

	assert.NotNil(t, FromRecords(nil))
}
