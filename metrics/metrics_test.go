package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := ProvideMetrics()

	m.Recommendation("ok")
	m.Recommendation("ok")
	m.Recommendation("empty")
	m.CatalogQueryFailed()
	m.Fallback("intent")
	m.TempoMatch("relaxed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.recommendations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recommendations.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogQueryFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallbacks.WithLabelValues("intent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tempoMatches.WithLabelValues("relaxed")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Recommendation("ok")
		m.CatalogQueryFailed()
		m.Fallback("features")
		m.TempoMatch("strict")
	})
}

func TestHandler(t *testing.T) {
	m := ProvideMetrics()
	m.TempoMatch("strict")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `moodify_tempo_match_total{tier="strict"} 1`)
}
