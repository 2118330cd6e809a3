package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerdesk/pkg/domain"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		probe     Probe
		wantAllow bool
		blocked   domain.AccountStatus
	}{
		{
			name:      "nothing resolved allows",
			probe:     Probe{},
			wantAllow: true,
		},
		{
			name:      "lookup still checking allows",
			probe:     Probe{Checking: true},
			wantAllow: true,
		},
		{
			name:      "approved allows",
			probe:     Probe{Result: &EmailStatus{Status: domain.StatusApproved}},
			wantAllow: true,
		},
		{
			name:    "pending blocks",
			probe:   Probe{Result: &EmailStatus{Status: domain.StatusPending}},
			blocked: domain.StatusPending,
		},
		{
			name:    "rejected blocks",
			probe:   Probe{Result: &EmailStatus{Status: domain.StatusRejected}},
			blocked: domain.StatusRejected,
		},
		{
			name:    "unknown email blocks",
			probe:   Probe{Result: &EmailStatus{Status: domain.StatusNotFound}},
			blocked: domain.StatusNotFound,
		},
		{
			name:      "unrecognized status stays permissive",
			probe:     Probe{Result: &EmailStatus{Status: "suspended"}},
			wantAllow: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.probe)
			assert.Equal(t, tt.wantAllow, d.Allow)
			assert.Equal(t, tt.blocked, d.Blocked)
			if !tt.wantAllow {
				assert.NotEmpty(t, d.Message)
			}
		})
	}
}

func TestDecideRejectedIncludesReason(t *testing.T) {
	d := Decide(Probe{Result: &EmailStatus{
		Status:          domain.StatusRejected,
		RejectionReason: "duplicate registration",
	}})

	require.False(t, d.Allow)
	assert.Contains(t, d.Message, "duplicate registration")
}

func TestDecidePendingMessage(t *testing.T) {
	d := Decide(Probe{Result: &EmailStatus{Status: domain.StatusPending}})

	require.False(t, d.Allow)
	assert.Contains(t, d.Message, "pending admin approval")
}

func TestDecideNotFoundPointsAtRegistration(t *testing.T) {
	d := Decide(Probe{Result: &EmailStatus{Status: domain.StatusNotFound}})

	require.False(t, d.Allow)
	assert.Contains(t, d.Message, "register")
}
