package account

import (
	"fmt"

	"partnerdesk/pkg/domain"
)

// Decision is the outcome of the login gate.
type Decision struct {
	Allow bool
	// Blocked carries the status that blocked submission, empty when allowed.
	Blocked domain.AccountStatus
	// Message is the user-facing explanation when blocked.
	Message string
}

// Decide determines whether a login attempt should reach the registry at
// all. A resolved status other than approved blocks locally with a
// status-specific message. An unresolved probe (nothing typed, lookup still
// checking, or lookup failed) lets submission through: the gate is advisory
// and the registry remains the final arbiter.
//
// A not_found outcome blocks: without an account the credential exchange
// cannot succeed, so the user is pointed at registration instead.
func Decide(probe Probe) Decision {
	if probe.Checking || probe.Result == nil {
		return Decision{Allow: true}
	}

	switch probe.Result.Status {
	case domain.StatusApproved:
		return Decision{Allow: true}
	case domain.StatusPending:
		return Decision{
			Blocked: domain.StatusPending,
			Message: "Your account is pending admin approval. Please wait for verification.",
		}
	case domain.StatusRejected:
		message := "Your account has been rejected. Please contact support."
		if reason := probe.Result.RejectionReason; reason != "" {
			message = fmt.Sprintf("%s Reason: %s", message, reason)
		}
		return Decision{Blocked: domain.StatusRejected, Message: message}
	case domain.StatusNotFound:
		return Decision{
			Blocked: domain.StatusNotFound,
			Message: "No account was found for this email. Please register first.",
		}
	default:
		// Unknown status from a newer registry: stay permissive.
		return Decision{Allow: true}
	}
}
