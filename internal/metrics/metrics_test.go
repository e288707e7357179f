package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFetch(t *testing.T) {
	before := testutil.ToFloat64(FetchesTotal.WithLabelValues(OutcomeTimeout))
	ObserveFetch(OutcomeTimeout, 5*time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(FetchesTotal.WithLabelValues(OutcomeTimeout)))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	counter := HttpRequestsTotal.WithLabelValues(http.MethodGet, "/books/:id", "418")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/42", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
