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
		Namespace: "mobilitymap",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mobilitymap",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mobilitymap",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Rendering pass metrics
	PipelineStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mobilitymap",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Duration of each rendering pass stage",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"stage"})

	RenderPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mobilitymap",
		Subsystem: "pipeline",
		Name:      "render_passes_total",
		Help:      "Total rendering passes by outcome",
	}, []string{"status"})

	RecordsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mobilitymap",
		Subsystem: "pipeline",
		Name:      "records_loaded",
		Help:      "Mobility records loaded by the last pass",
	})

	UnmatchedNames = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mobilitymap",
		Subsystem: "pipeline",
		Name:      "unmatched_names",
		Help:      "Reconciled country names without a boundary feature",
	})

	ArtifactBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mobilitymap",
		Subsystem: "pipeline",
		Name:      "artifact_bytes",
		Help:      "Size of the last published map artifact",
	})
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
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
