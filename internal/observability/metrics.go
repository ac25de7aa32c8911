package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service.
// Each instance owns its registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorCount      *prometheus.CounterVec
	Registrations   *prometheus.CounterVec
	MatchLookups    prometheus.Counter
	MatchedDonors   prometheus.Histogram
	StatsRefreshes  *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifematch_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"path", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lifematch_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"path", "method"}),
		ErrorCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifematch_http_errors_total",
			Help: "HTTP errors by route, method and error code",
		}, []string{"path", "method", "code"}),
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifematch_registrations_total",
			Help: "Successful registrations by kind",
		}, []string{"kind"}),
		MatchLookups: factory.NewCounter(prometheus.CounterOpts{
			Name: "lifematch_match_lookups_total",
			Help: "Compatibility lookups against the donor pool",
		}),
		MatchedDonors: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifematch_matched_donors",
			Help:    "Number of compatible available donors returned per lookup",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		StatsRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifematch_stats_refreshes_total",
			Help: "Dashboard stats refresh attempts by outcome",
		}, []string{"outcome"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestCount.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.ErrorCount.WithLabelValues(path, method, code).Inc()
}

// RecordRegistration counts a stored donor or recipient.
func (m *Metrics) RecordRegistration(kind string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(kind).Inc()
}

// RecordMatchLookup counts a compatibility lookup and its result size.
func (m *Metrics) RecordMatchLookup(matched int) {
	if m == nil {
		return
	}
	m.MatchLookups.Inc()
	m.MatchedDonors.Observe(float64(matched))
}

// RecordStatsRefresh counts a refresher tick by outcome ("ok" or "error").
func (m *Metrics) RecordStatsRefresh(outcome string) {
	if m == nil {
		return
	}
	m.StatsRefreshes.WithLabelValues(outcome).Inc()
}
