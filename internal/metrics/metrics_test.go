package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health", "/health"},
		{"/v1/positions", "/v1/positions"},
		{"", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizeRoute(tt.path); got != tt.want {
				t.Errorf("normalizeRoute(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/ping", "GET", "200"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/ping", "GET", "200"))
	if after-before != 1 {
		t.Errorf("request counter moved by %v, want 1", after-before)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wp-admin", nil))
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("other", "GET", "404")); got < 1 {
		t.Errorf("unmatched route should be labelled other, counter = %v", got)
	}
}

func TestComputationCounters(t *testing.T) {
	before := testutil.ToFloat64(positionsTotal.WithLabelValues("Mars", "error"))
	ObserveComputation("Mars", time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(positionsTotal.WithLabelValues("Mars", "error")); got-before != 1 {
		t.Errorf("error counter moved by %v", got-before)
	}

	hits := testutil.ToFloat64(cacheHitsTotal)
	IncCacheHits()
	if got := testutil.ToFloat64(cacheHitsTotal); got-hits != 1 {
		t.Errorf("cache hits moved by %v", got-hits)
	}
}

func TestHandler(t *testing.T) {
	IncCacheMisses()
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "ephem_position_cache_misses_total") {
		t.Error("metrics output should include the cache miss counter")
	}
}
