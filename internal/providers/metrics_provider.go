package providers

import (
	"psgdle/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EntryCounter is the slice of the store the gauge reads; keeps the
// providers package out of the storage import graph.
type EntryCounter interface {
	Len() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncGuessesTotal(mode, result string)
	IncGamesCompleted(mode, outcome string)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	guessesTotal        *prometheus.CounterVec
	gamesCompleted      *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncGuessesTotal(mode, result string) {
	m.guessesTotal.WithLabelValues(mode, result).Inc()
}

func (m *MetricsProvider) IncGamesCompleted(mode, outcome string) {
	m.gamesCompleted.WithLabelValues(mode, outcome).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, store EntryCounter) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "psgdle_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "psgdle_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		guessesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "psgdle_guesses_total",
			Help: "Total number of submitted guesses",
		}, []string{"mode", "result"}),

		gamesCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "psgdle_games_completed_total",
			Help: "Total number of games reaching a terminal phase",
		}, []string{"mode", "outcome"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "psgdle_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "psgdle_store_entries",
		Help: "Current number of entries in the key-value store",
	}, func() float64 {
		return float64(store.Len())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncGuessesTotal(_ string, _ string)               {}
func (n *noopMetrics) IncGamesCompleted(_ string, _ string)             {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
