package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	UsersTotal          prometheus.Gauge
	NotesTotal          prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests in seconds",
			ConstLabels: prometheus.Labels{"app": "quicknotes-api"},
			Buckets:     []float64{0.1, 0.3, 0.5, 0.7, 1, 3, 5, 7, 10},
		}, []string{"method", "route", "status"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: prometheus.Labels{"app": "quicknotes-api"},
		}, []string{"method", "route", "status"}),
		UsersTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "active_users_total",
			Help:        "Number of registered accounts",
			ConstLabels: prometheus.Labels{"app": "quicknotes-api"},
		}),
		NotesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "notes_total",
			Help:        "Total number of notes in the system",
			ConstLabels: prometheus.Labels{"app": "quicknotes-api"},
		}),
	}

	registry.MustRegister(m.HTTPRequestDuration, m.HTTPRequestsTotal, m.UsersTotal, m.NotesTotal)
	return m
}

// Middleware times every request and records it under the route pattern
// (not the raw path) so path parameters don't explode label cardinality.
func (m *Metrics) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		route := ctx.Route().Path
		status := strconv.Itoa(ctx.Response().StatusCode())
		m.HTTPRequestDuration.WithLabelValues(ctx.Method(), route, status).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(ctx.Method(), route, status).Inc()

		return err
	}
}

// StatsFn supplies current account/note totals for gauge refresh on scrape.
type StatsFn func(ctx context.Context) (users int64, notes int64, err error)

// RegisterStats wires the entity gauges to a stats source; totals are
// refreshed lazily when /metrics is scraped.
func (m *Metrics) RegisterStats(stats StatsFn) fiber.Handler {
	base := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if users, notes, err := stats(ctx); err == nil {
			m.UsersTotal.Set(float64(users))
			m.NotesTotal.Set(float64(notes))
		}
		base.ServeHTTP(w, r)
	})
	return adaptor.HTTPHandler(wrapped)
}
