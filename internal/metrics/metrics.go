package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AnalysesTotal counts finished analyses by where the returned record came from.
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nutritionguard",
		Subsystem: "analyzer",
		Name:      "analyses_total",
		Help:      "Total number of analysis requests answered, labeled by record source.",
	}, []string{"source"})

	// RejectionsTotal counts images refused before any model call.
	RejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nutritionguard",
		Subsystem: "analyzer",
		Name:      "rejections_total",
		Help:      "Total number of images rejected by intake validation, labeled by reason.",
	}, []string{"reason"})

	// ParseTotal counts which normalization branch produced the record.
	ParseTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nutritionguard",
		Subsystem: "analyzer",
		Name:      "parse_total",
		Help:      "Total number of model responses normalized, labeled by parse branch.",
	}, []string{"branch"})

	// ModelCallDurationSeconds is the wall time of a single vision model call.
	ModelCallDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nutritionguard",
		Subsystem: "analyzer",
		Name:      "model_call_duration_seconds",
		Help:      "Time spent waiting for the vision model, labeled by result.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"result"})
)

// Register registers analyzer metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AnalysesTotal,
			RejectionsTotal,
			ParseTotal,
			ModelCallDurationSeconds,
		)
	})
}
