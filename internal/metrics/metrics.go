// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// the ephemeris engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ephem_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ephem_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	positionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ephem_positions_computed_total",
			Help: "Positions computed by the ephemeris engine.",
		},
		[]string{"body", "result"},
	)

	positionSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ephem_position_duration_seconds",
			Help:    "Time spent computing one position.",
			Buckets: []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3},
		},
		[]string{"body"},
	)

	cacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ephem_position_cache_hits_total",
		Help: "Position cache hits.",
	})

	cacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ephem_position_cache_misses_total",
		Help: "Position cache misses.",
	})

	tableLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ephem_table_lookups_total",
			Help: "Lookups in the precomputed ephemeris table.",
		},
		[]string{"result"},
	)

	rateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ephem_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})

	streamClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ephem_stream_clients",
		Help: "Connected websocket stream clients.",
	})

	batchPointsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ephem_batch_points_total",
		Help: "Instants computed by batch requests.",
	})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(positionsTotal)
	prometheus.MustRegister(positionSeconds)
	prometheus.MustRegister(cacheHitsTotal)
	prometheus.MustRegister(cacheMissesTotal)
	prometheus.MustRegister(tableLookupsTotal)
	prometheus.MustRegister(rateLimitedTotal)
	prometheus.MustRegister(streamClients)
	prometheus.MustRegister(batchPointsTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and duration for each request.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := normalizeRoute(c.FullPath())
		code := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(path, c.Request.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// normalizeRoute keeps label cardinality bounded: unmatched paths share one label.
func normalizeRoute(fullPath string) string {
	if fullPath == "" {
		return "other"
	}
	return fullPath
}

// IncCacheHits counts a position cache hit.
func IncCacheHits() { cacheHitsTotal.Inc() }

// IncCacheMisses counts a position cache miss.
func IncCacheMisses() { cacheMissesTotal.Inc() }

// ObserveComputation records one position computation.
func ObserveComputation(body string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	positionsTotal.WithLabelValues(body, result).Inc()
	positionSeconds.WithLabelValues(body).Observe(d.Seconds())
}

// IncTableLookup counts a table lookup; hit reports whether the table
// covered the request.
func IncTableLookup(hit bool) {
	if hit {
		tableLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	tableLookupsTotal.WithLabelValues("miss").Inc()
}

// IncRateLimited counts a rejected request.
func IncRateLimited() { rateLimitedTotal.Inc() }

// StreamConnected tracks a new websocket client.
func StreamConnected() { streamClients.Inc() }

// StreamDisconnected tracks a closed websocket client.
func StreamDisconnected() { streamClients.Dec() }

// AddBatchPoints counts instants computed by a batch request.
func AddBatchPoints(n int) { batchPointsTotal.Add(float64(n)) }
