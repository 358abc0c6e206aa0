package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	recommendations      *prometheus.CounterVec
	catalogQueryFailures prometheus.Counter
	fallbacks            *prometheus.CounterVec
	tempoMatches         *prometheus.CounterVec
}

// ProvideMetrics builds the counters on a dedicated registry.
func ProvideMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moodify_recommendations_total",
			Help: "Recommendation requests by outcome.",
		}, []string{"outcome"}),
		catalogQueryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "moodify_catalog_query_failures_total",
			Help: "Catalog search calls that failed and were skipped.",
		}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moodify_fallbacks_total",
			Help: "Language model calls that degraded to a default value.",
		}, []string{"component"}),
		tempoMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "moodify_tempo_match_total",
			Help: "Tempo filter tier that produced the final playlist.",
		}, []string{"tier"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.recommendations,
		m.catalogQueryFailures,
		m.fallbacks,
		m.tempoMatches,
	)
	return m
}

func (m *Metrics) Recommendation(outcome string) {
	if m == nil {
		return
	}
	m.recommendations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CatalogQueryFailed() {
	if m == nil {
		return
	}
	m.catalogQueryFailures.Inc()
}

func (m *Metrics) Fallback(component string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(component).Inc()
}

func (m *Metrics) TempoMatch(tier string) {
	if m == nil {
		return
	}
	m.tempoMatches.WithLabelValues(tier).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var Options = ProvideMetrics
