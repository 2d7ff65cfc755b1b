package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "profil",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "profil",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "profil",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Conversion metrics
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "profil",
		Subsystem: "conversion",
		Name:      "total",
		Help:      "Profile conversions by result and failing stage",
	}, []string{"result", "stage"})

	ConversionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "profil",
		Subsystem: "conversion",
		Name:      "duration_seconds",
		Help:      "Duration of a profile conversion",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"operation"})

	ProfilePoints = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "profil",
		Subsystem: "conversion",
		Name:      "profile_points",
		Help:      "Number of coordinate triples per converted profile",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 9),
	})

	Gridlines = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "profil",
		Subsystem: "conversion",
		Name:      "gridlines",
		Help:      "Number of elevation gridlines per drawing",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	OutputSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "profil",
		Subsystem: "conversion",
		Name:      "output_size_bytes",
		Help:      "Size of generated drawing files",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "profil",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Conversion events handed to the broker",
	}, []string{"result"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
