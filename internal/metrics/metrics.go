package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cams_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cams_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HistoryEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cams_history_entries_total",
			Help: "Total number of history entries recorded",
		},
		[]string{"action"},
	)

	PinDownsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cams_pin_downs_total",
			Help: "Total number of board pin-down operations",
		},
	)

	ContactExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cams_contact_exports_total",
			Help: "Total number of group contact exports",
		},
		[]string{"cache"},
	)
)

// Middleware tracks request counts and latencies per route.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		HttpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

		return err
	}
}
