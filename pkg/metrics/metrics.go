// Package metrics provides Prometheus metrics collection for outbound
// provider calls (route lookups, chat completions, authentication).
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tmalloy/wayfarer/pkg/logger"
)

const subsystem = "wayfarer"

// Metrics holds the Prometheus registry and the counters incremented by the
// provider adapters.
type Metrics struct {
	reg *prometheus.Registry

	RouteLookupsTotal     prometheus.Counter
	RouteLookupsFailed    prometheus.Counter
	RouteLookupDuration   prometheus.Histogram
	ChatCompletionsTotal  prometheus.Counter
	ChatCompletionsFailed prometheus.Counter
	ChatDuration          prometheus.Histogram
	TokenRefreshesTotal   prometheus.Counter
	InteractiveLogins     prometheus.Counter

	server *http.Server
	log    logger.Logger
}

// New creates a Metrics instance with all collectors registered.
func New(l logger.Logger) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		log: l,
	}

	m.RouteLookupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "route_lookups_total",
		Help:      "Total route lookups attempted",
	})
	m.RouteLookupsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "route_lookups_failed",
		Help:      "Route lookups that returned an error",
	})
	m.RouteLookupDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Subsystem: subsystem,
		Name:      "route_lookup_duration_seconds",
		Help:      "Route lookup duration in seconds",
		Buckets:   []float64{0.1, 0.3, 0.5, 0.7, 1.0, 3.0, 5.0, 7.0, 10.0},
	})
	m.ChatCompletionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "chat_completions_total",
		Help:      "Total chat completions attempted",
	})
	m.ChatCompletionsFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "chat_completions_failed",
		Help:      "Chat completions that returned an error",
	})
	m.ChatDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Subsystem: subsystem,
		Name:      "chat_completion_duration_seconds",
		Help:      "Chat completion duration in seconds",
		Buckets:   []float64{0.1, 0.5, 1.0, 3.0, 5.0, 10.0, 20.0, 30.0},
	})
	m.TokenRefreshesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "token_refreshes_total",
		Help:      "Total OAuth token refreshes attempted",
	})
	m.InteractiveLogins = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      "interactive_logins_total",
		Help:      "Total interactive OAuth flows started",
	})

	m.reg.MustRegister(
		m.RouteLookupsTotal,
		m.RouteLookupsFailed,
		m.RouteLookupDuration,
		m.ChatCompletionsTotal,
		m.ChatCompletionsFailed,
		m.ChatDuration,
		m.TokenRefreshesTotal,
		m.InteractiveLogins,
	)

	return m
}

// AddCustomMetric registers a custom Prometheus collector.
func (m *Metrics) AddCustomMetric(c prometheus.Collector) {
	m.reg.MustRegister(c)
}

// Listen starts the metrics HTTP listener on the given port. It returns
// immediately; use Shutdown to stop it.
func (m *Metrics) Listen(port int) {
	m.log.Info("Starting metrics listener", logger.IntField("port", port))
	mux := http.NewServeMux()
	mux.Handle("/", http.NotFoundHandler())
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	m.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.log.Error("Metrics listener failed", logger.ErrorField(err))
		}
	}()
}

// Shutdown stops the metrics listener if one is running.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	m.log.Info("Stopping metrics listener")
	return m.server.Shutdown(ctx)
}
