// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation for HTTP traffic. Labels are
// chosen to keep cardinality bounded: method, the registered Gin route (not
// the raw URL, which embeds identifiers), and the numeric status. Failing
// requests are additionally counted by their canonical API error code
// (E001, E404, ...) so dashboards can break down failures by taxonomy row
// without parsing bodies.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// httpReqs counts requests by method, route path, and status code.
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// httpLat records request duration in seconds by method and route path.
	// Status is omitted to keep histogram cardinality lower.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// httpInflight gauges the number of in-flight requests.
	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// apiErrors counts failing requests by canonical API error code.
	apiErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of API error responses by canonical error code.",
		},
		[]string{"code"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, apiErrors)
}

// errorCodeKey is the Gin context key under which the dispatcher records
// the canonical error code it served, for metric labeling.
const errorCodeKey = "apierr.code"

// SetErrorCode records the canonical error code served for this request.
// Called by the error dispatcher; a request without a code is a success.
func SetErrorCode(c *gin.Context, code string) {
	c.Set(errorCodeKey, code)
}

// Metrics returns a Gin middleware that instruments requests with
// Prometheus. Mount promhttp.Handler() on /metrics alongside it.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()

		c.Next()

		httpInflight.Dec()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpReqs.WithLabelValues(method, path, status).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		if v, ok := c.Get(errorCodeKey); ok {
			if code, ok := v.(string); ok && code != "" {
				apiErrors.WithLabelValues(code).Inc()
			}
		}
	}
}
