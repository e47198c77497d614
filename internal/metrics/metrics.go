// Package metrics exposes Prometheus instrumentation for the engine's
// surrounding service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheme_evaluations_total",
			Help: "Total number of per-scheme eligibility evaluations",
		},
		[]string{"verdict"},
	)

	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "catalog_rank_duration_seconds",
			Help: "Duration of catalog ranking calls in seconds",
		},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_schemes",
			Help: "Number of active schemes in the catalog at last load",
		},
	)

	CatalogImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_imports_total",
			Help: "Catalog CSV import attempts by result",
		},
		[]string{"result"},
	)
)

// VerdictLabel maps an eligibility verdict to its metric label.
func VerdictLabel(isEligible bool) string {
	if isEligible {
		return "eligible"
	}
	return "ineligible"
}
