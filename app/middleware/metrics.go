package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration in seconds partitioned by method, route, and status code
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Gateway callbacks by kind; these always answer 200 so status alone hides them
	webhookCallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telephony_webhook_callbacks_total",
			Help: "Inbound telephony webhook callbacks by route",
		},
		[]string{"route"},
	)
)

// Metrics returns a Fiber middleware that records request metrics.
// The matched route template is used as the label when available.
func Metrics(skipPaths ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		for _, p := range skipPaths {
			if c.Path() == p {
				return c.Next()
			}
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}

		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  route,
			"status": strconv.Itoa(c.Response().StatusCode()),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())

		if strings.HasPrefix(route, "/telephony/") {
			webhookCallbacksTotal.WithLabelValues(route).Inc()
		}

		return err
	}
}
