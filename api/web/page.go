// Package web serves the search page and its static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/book-search/api/types"
	"github.com/killallgit/book-search/internal/models"
	"github.com/killallgit/book-search/internal/services/searchform"
	"github.com/killallgit/book-search/internal/services/searchstate"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PageSizeOptions are offered by the paginator.
var PageSizeOptions = []int{5, 10, 25, 50, 100}

// PageData is the state the page is rendered with
type PageData struct {
	SearchText      string
	PageSize        int
	Page            int
	PageSizeOptions []int
	SessionsPath    string
}

// NewPageData restores the form state from the address bar.
func NewPageData(q map[string][]string, defaultPageSize int) PageData {
	h := searchstate.NewHolder()
	h.Init(defaultPageSize, q)

	data := PageData{
		SearchText:      searchform.FieldValue(h),
		PageSize:        models.DefaultPageSize,
		Page:            1,
		PageSizeOptions: PageSizeOptions,
		SessionsPath:    "/api/v1/sessions",
	}
	if current := h.Value(); current != nil {
		data.PageSize = current.PageSize
		data.Page = current.Page
	}
	if !containsInt(data.PageSizeOptions, data.PageSize) {
		data.PageSizeOptions = append([]int{data.PageSize}, PageSizeOptions...)
	}
	return data
}

// Index renders the search page
func Index(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := NewPageData(c.Request.URL.Query(), deps.DefaultPageSize())

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := pageTemplate.Execute(c.Writer, data); err != nil {
			_ = c.Error(err)
		}
	}
}

// Static returns the embedded asset file system.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
