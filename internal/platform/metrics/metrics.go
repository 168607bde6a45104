// Package metrics exposes the Prometheus instruments for job orchestration.
// Stranded jobs (terminal writes that could not be persisted) have their
// own counter because the job record itself can no longer tell the story.
package metrics

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	jobsSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "voyagecraft_jobs_submitted_total",
			Help: "Total number of itinerary jobs accepted for generation.",
		},
	)

	jobsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voyagecraft_jobs_processed_total",
			Help: "Itinerary jobs whose terminal state was persisted, by status.",
		},
		[]string{"status"}, // 'completed', 'failed'
	)

	jobsStrandedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "voyagecraft_jobs_stranded_total",
			Help: "Jobs left in processing because the terminal write failed.",
		},
	)

	generationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voyagecraft_generation_duration_seconds",
			Help:    "Latency of content generation calls per provider.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		},
		[]string{"provider", "success"},
	)
)

// MustRegister registers the collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			jobsSubmittedTotal,
			jobsProcessedTotal,
			jobsStrandedTotal,
			generationSeconds,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// IncJobSubmitted counts an accepted submission.
func IncJobSubmitted() {
	jobsSubmittedTotal.Inc()
}

// IncJobProcessed counts a persisted terminal transition.
func IncJobProcessed(status string) {
	jobsProcessedTotal.WithLabelValues(norm(status)).Inc()
}

// IncJobStranded counts a job abandoned in processing after a failed
// terminal write.
func IncJobStranded() {
	jobsStrandedTotal.Inc()
}

// ObserveGeneration records the latency of one generation round trip.
func ObserveGeneration(provider string, elapsed time.Duration, success bool) {
	generationSeconds.WithLabelValues(norm(provider), strconv.FormatBool(success)).
		Observe(elapsed.Seconds())
}
