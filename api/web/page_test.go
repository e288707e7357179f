package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/killallgit/book-search/api/types"
	"github.com/killallgit/book-search/pkg/config"
)

func TestNewPageData(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		defaultSize  int
		wantText     string
		wantSize     int
		wantPage     int
		wantOptFirst int
	}{
		{
			name:         "configured default",
			defaultSize:  25,
			wantSize:     25,
			wantPage:     1,
			wantOptFirst: 5,
		},
		{
			name:         "restored from url",
			query:        "searchText=tolkien&pageSize=20&page=2",
			defaultSize:  25,
			wantText:     "tolkien",
			wantSize:     20,
			wantPage:     2,
			wantOptFirst: 20,
		},
		{
			name:         "no default",
			wantSize:     10,
			wantPage:     1,
			wantOptFirst: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			data := NewPageData(q, tt.defaultSize)
			assert.Equal(t, tt.wantText, data.SearchText)
			assert.Equal(t, tt.wantSize, data.PageSize)
			assert.Equal(t, tt.wantPage, data.Page)
			assert.Equal(t, tt.wantOptFirst, data.PageSizeOptions[0])
		})
	}
}

func TestIndex(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, &types.Dependencies{Config: &config.Config{Search: config.SearchConfig{DefaultPageSize: 25}}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?searchText=%3Cb%3Edune%3C%2Fb%3E", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="&lt;b&gt;dune&lt;/b&gt;"`)
	assert.Contains(t, body, `<option value="25" selected>25</option>`)
	assert.Contains(t, body, `data-sessions="/api/v1/sessions"`)
	assert.NotContains(t, body, `id="search-error"`)
}

func TestStatic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, &types.Dependencies{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/app.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	script := w.Body.String()
	assert.Contains(t, script, "EventSource")

	// Form errors are blocking alerts and the field follows every state event.
	assert.Contains(t, script, "window.alert('Search text cannot be empty.')")
	assert.NotContains(t, script, "errorEl")
	assert.Contains(t, script, "input.value = payload.search.searchText;")
	assert.Contains(t, script, "Math.floor(paginator.pageIndex * paginator.pageSize / size)")
}
