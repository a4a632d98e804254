package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/easybookevent/artistcal/pkg/metrics"
)

func TestMetricsMiddlewareLabels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve := func(path string) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	base := testutil.CollectAndCount(metrics.APILatency)

	serve("/ping")
	require.Equal(t, base+1, testutil.CollectAndCount(metrics.APILatency))

	// Unknown URLs fold into a single label value instead of one series each.
	serve("/no-such-route")
	serve("/another-unknown")
	require.Equal(t, base+2, testutil.CollectAndCount(metrics.APILatency))

	// The scrape endpoint does not observe itself.
	serve("/metrics")
	require.Equal(t, base+2, testutil.CollectAndCount(metrics.APILatency))
}
