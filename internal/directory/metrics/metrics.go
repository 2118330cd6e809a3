package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory module: fetch traffic and
// how often the last-request-wins policy discards a superseded response.
type Metrics struct {
	FetchesIssued  prometheus.Counter
	FetchFailures  prometheus.Counter
	StaleDiscarded prometheus.Counter
	FetchDuration  prometheus.Histogram
}

// New creates a Metrics instance with all directory metrics registered.
func New() *Metrics {
	return &Metrics{
		FetchesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerdesk_directory_fetches_total",
			Help: "Total number of directory fetches issued",
		}),
		FetchFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerdesk_directory_fetch_failures_total",
			Help: "Total number of directory fetches that failed",
		}),
		StaleDiscarded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerdesk_directory_stale_responses_total",
			Help: "Responses discarded because a newer fetch was issued",
		}),
		FetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "partnerdesk_directory_fetch_duration_seconds",
			Help:    "Duration of directory fetches",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// ObserveFetch records the duration of a fetch. Call with time.Now() taken
// at the start of the operation.
func (m *Metrics) ObserveFetch(start time.Time) {
	m.FetchDuration.Observe(time.Since(start).Seconds())
}
