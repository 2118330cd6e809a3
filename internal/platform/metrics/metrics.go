package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the registry mock surface.
type Metrics struct {
	RegistrationsTotal prometheus.Counter
	SessionsIssued     prometheus.Counter
	LoginsRefused      prometheus.Counter
}

// New creates and registers all registry metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerdesk_registry_registrations_total",
			Help: "Accounts created through the registration endpoint",
		}),
		SessionsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerdesk_registry_sessions_issued_total",
			Help: "Successful credential exchanges",
		}),
		LoginsRefused: promauto.NewCounter(prometheus.CounterOpts{
			Name: "partnerdesk_registry_logins_refused_total",
			Help: "Login attempts refused for bad credentials or account state",
		}),
	}
}
