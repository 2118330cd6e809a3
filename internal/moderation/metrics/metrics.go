package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the moderation module: action volume,
// failures, and duplicate submissions caught by the in-flight guard.
type Metrics struct {
	Actions           *prometheus.CounterVec
	ActionFailures    *prometheus.CounterVec
	DuplicateActions  prometheus.Counter
	PendingListLength prometheus.Gauge
}

// New creates a Metrics instance with all moderation metrics registered.
func New() *Metrics {
	return &Metrics{
		Actions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "partnerdesk_moderation_actions_total",
			Help: "Moderation actions dispatched to the registry",
		}, []string{"action"}),
		ActionFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "partnerdesk_moderation_action_failures_total",
			Help: "Moderation actions that the registry rejected or that failed in transit",
		}, []string{"action"}),
		DuplicateActions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerdesk_moderation_duplicate_actions_total",
			Help: "Actions refused because one was already in flight for the same user",
		}),
		PendingListLength: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "partnerdesk_moderation_pending_users",
			Help: "Size of the pending user list after the last fetch",
		}),
	}
}

// IncrementAction records a dispatched action by name.
func (m *Metrics) IncrementAction(action string) {
	m.Actions.WithLabelValues(action).Inc()
}

// IncrementFailure records a failed action by name.
func (m *Metrics) IncrementFailure(action string) {
	m.ActionFailures.WithLabelValues(action).Inc()
}
