package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arloliu/cindex/format"
)

// Metrics holds the analyzer's Prometheus counters. A nil *Metrics records nothing.
type Metrics struct {
	// evaluations counts instructions costed per lens.
	// Labels: lens
	evaluations *prometheus.CounterVec

	// failures counts lens or candidate failures.
	// Labels: lens
	failures *prometheus.CounterVec

	// recommendations counts which lens produced the final recommendation.
	// Labels: lens
	recommendations *prometheus.CounterVec
}

// NewMetrics registers the analyzer counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cindex",
			Name:      "lens_evaluations_total",
			Help:      "Total instructions costed by each lens",
		}, []string{"lens"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cindex",
			Name:      "lens_failures_total",
			Help:      "Total lens evaluations skipped because of an error",
		}, []string{"lens"}),
		recommendations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cindex",
			Name:      "recommendations_total",
			Help:      "Total analyses whose recommendation came from each lens",
		}, []string{"lens"}),
	}
}

func (m *Metrics) evaluated(lens format.LensID) {
	if m != nil {
		m.evaluations.WithLabelValues(lens.String()).Inc()
	}
}

func (m *Metrics) failed(lens format.LensID) {
	if m != nil {
		m.failures.WithLabelValues(lens.String()).Inc()
	}
}

func (m *Metrics) recommended(lens format.LensID) {
	if m != nil {
		m.recommendations.WithLabelValues(lens.String()).Inc()
	}
}
