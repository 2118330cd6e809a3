package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the account module: probe traffic,
// stale discards, and locally blocked logins by reason.
type Metrics struct {
	ProbesIssued    prometheus.Counter
	ProbesDiscarded prometheus.Counter
	ProbeFailures   prometheus.Counter
	LoginsBlocked   *prometheus.CounterVec
}

// New creates a Metrics instance with all account metrics registered.
func New() *Metrics {
	return &Metrics{
		ProbesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerdesk_email_probes_total",
			Help: "Email status lookups issued after the settle delay",
		}),
		ProbesDiscarded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerdesk_email_probes_discarded_total",
			Help: "Probe responses discarded because the input changed",
		}),
		ProbeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerdesk_email_probe_failures_total",
			Help: "Probe lookups that failed and degraded to no status",
		}),
		LoginsBlocked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "partnerdesk_logins_blocked_total",
			Help: "Login attempts blocked locally by the gate",
		}, []string{"reason"}),
	}
}

// IncrementLoginBlocked records a gate block for the given status.
func (m *Metrics) IncrementLoginBlocked(reason string) {
	m.LoginsBlocked.WithLabelValues(reason).Inc()
}
