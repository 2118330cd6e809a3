// Package account implements the client side of the account lifecycle: the
// debounced email status probe, the login gate, and the login/registration
// flows against the upstream registry.
package account

import (
	"time"

	"partnerdesk/pkg/domain"
)

// User is the client-side copy of a registry account.
type User struct {
	ID              domain.UserID        `json:"id"`
	FullName        string               `json:"full_name"`
	Email           string               `json:"email"`
	Role            domain.Role          `json:"role"`
	Department      domain.Department    `json:"department,omitempty"`
	Status          domain.AccountStatus `json:"status"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// Session is the result of a successful credential exchange.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// EmailStatus is a resolved probe outcome for one email value.
type EmailStatus struct {
	Status          domain.AccountStatus `json:"status"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
}

// Exists reports whether an account exists for the probed email. A
// not-found outcome is distinct from pending or rejected: it means no
// account at all.
func (s EmailStatus) Exists() bool {
	return s.Status != "" && s.Status != domain.StatusNotFound
}

// Probe is the UI-facing state of the email status resolver. Result is nil
// before any probe for the current input has completed; Checking marks an
// in-flight lookup, which is distinct from both "no status" and the previous
// result.
type Probe struct {
	Checking bool
	Result   *EmailStatus
}

// Registration is the client-side input for creating an account. Accounts
// are created pending and stay unusable until an admin approves them.
type Registration struct {
	Email      string            `json:"email"`
	Password   string            `json:"password"`
	FullName   string            `json:"full_name"`
	Role       domain.Role       `json:"role"`
	Department domain.Department `json:"department,omitempty"`
}
