// Package metrics defines Prometheus metrics for the recommendation service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all registered Prometheus collectors.
type Metrics struct {
	RequestDuration      *prometheus.HistogramVec
	RequestTotal         *prometheus.CounterVec
	RecommendationsTotal prometheus.Counter
	EmbeddingFailures    prometheus.Counter
	LLMFallbacks         *prometheus.CounterVec
	ActivityRowsSynced   prometheus.Counter
}

// Register registers all metrics with the given registry and returns the Metrics instance.
func Register(reg prometheus.Registerer) (*Metrics, error) {
	m := New()
	collectors := []prometheus.Collector{
		m.RequestDuration,
		m.RequestTotal,
		m.RecommendationsTotal,
		m.EmbeddingFailures,
		m.LLMFallbacks,
		m.ActivityRowsSynced,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// EmbeddingFailure counts one zeroed embedding call.
func (m *Metrics) EmbeddingFailure() {
	m.EmbeddingFailures.Inc()
}

// LLMFallback counts one LLM failure replaced by a deterministic fallback.
func (m *Metrics) LLMFallback(flow string) {
	m.LLMFallbacks.WithLabelValues(flow).Inc()
}

// New creates uninitialised metric instances.
func New() *Metrics {
	return &Metrics{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careerate_request_duration_seconds",
				Help:    "Duration of HTTP request handling in seconds.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60},
			},
			[]string{"route", "method", "status"},
		),
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerate_request_total",
				Help: "Total number of HTTP requests by route, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		RecommendationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careerate_recommendations_total",
			Help: "Total number of recommendations produced.",
		}),
		EmbeddingFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careerate_embedding_failures_total",
			Help: "Total number of embedding calls that failed and were zeroed.",
		}),
		LLMFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careerate_llm_fallbacks_total",
				Help: "Total number of LLM failures replaced by deterministic fallbacks.",
			},
			[]string{"flow"},
		),
		ActivityRowsSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careerate_activity_rows_synced_total",
			Help: "Total number of activity rows stored from extension syncs.",
		}),
	}
}
