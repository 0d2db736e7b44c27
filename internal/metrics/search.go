package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vanity_miner",
		Subsystem: "search",
		Name:      "attempts_total",
		Help:      "Count of candidate keys tried, in coordination batches.",
	}, []string{"hrp"})

	searchMatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vanity_miner",
		Subsystem: "search",
		Name:      "matches_total",
		Help:      "Count of matching candidates by outcome (claimed or discarded).",
	}, []string{"hrp", "outcome"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vanity_miner",
		Subsystem: "search",
		Name:      "duration_seconds",
		Help:      "Wall time from worker start to a claimed match.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 12),
	}, []string{"hrp"})

	searchWorkers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vanity_miner",
		Subsystem: "search",
		Name:      "workers",
		Help:      "Number of running search workers.",
	}, []string{"hrp"})
)

// Search tracks metrics for one vanity search.
type Search struct {
	hrp string
}

// NewSearch constructs a Search observer labelled by hrp.
func NewSearch(hrp string) *Search {
	if hrp == "" {
		hrp = "unknown"
	}
	return &Search{hrp: hrp}
}

// ObserveAttempts records a batch of tried candidates.
func (m *Search) ObserveAttempts(n uint64) {
	searchAttemptsTotal.WithLabelValues(m.hrp).Add(float64(n))
}

// ObserveMatch records a matching candidate; claimed is false when another
// worker already won and the match was dropped.
func (m *Search) ObserveMatch(claimed bool) {
	outcome := "discarded"
	if claimed {
		outcome = "claimed"
	}
	searchMatchesTotal.WithLabelValues(m.hrp, outcome).Inc()
}

// ObserveFound records the duration of a successful search.
func (m *Search) ObserveFound(started time.Time) {
	searchDuration.WithLabelValues(m.hrp).Observe(time.Since(started).Seconds())
}

// WorkerStarted and WorkerStopped track the live worker count.
func (m *Search) WorkerStarted() {
	searchWorkers.WithLabelValues(m.hrp).Inc()
}

func (m *Search) WorkerStopped() {
	searchWorkers.WithLabelValues(m.hrp).Dec()
}
