package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/scholarassist/scholarassist/backend/go-services/pkg/metrics"
	"github.com/stretchr/testify/require"
)

func TestMetrics_LabelsByRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/papers/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	matched := metrics.HTTPRequests.WithLabelValues("GET", "/api/papers/:id", "404")
	unmatched := metrics.HTTPRequests.WithLabelValues("GET", "unmatched", "404")
	matchedBefore := testutil.ToFloat64(matched)
	unmatchedBefore := testutil.ToFloat64(unmatched)

	for _, path := range []string{"/api/papers/paper-1", "/api/papers/paper-2", "/nowhere"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Equal(t, matchedBefore+2, testutil.ToFloat64(matched))
	require.Equal(t, unmatchedBefore+1, testutil.ToFloat64(unmatched))
}
