package account

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerdesk/pkg/domain"
)

// scriptedChecker records lookups and can hold a call open until released,
// which lets tests interleave responses out of order.
type scriptedChecker struct {
	mu      sync.Mutex
	calls   []string
	results map[string]EmailStatus
	err     error
	gates   map[string]chan struct{}
}

func newScriptedChecker() *scriptedChecker {
	return &scriptedChecker{
		results: make(map[string]EmailStatus),
		gates:   make(map[string]chan struct{}),
	}
}

func (c *scriptedChecker) hold(email string) chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	gate := make(chan struct{})
	c.gates[email] = gate
	return gate
}

func (c *scriptedChecker) CheckEmailStatus(_ context.Context, email string) (EmailStatus, error) {
	c.mu.Lock()
	c.calls = append(c.calls, email)
	gate := c.gates[email]
	status := c.results[email]
	err := c.err
	c.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return status, err
}

func (c *scriptedChecker) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *scriptedChecker) lastCall() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.calls) == 0 {
		return ""
	}
	return c.calls[len(c.calls)-1]
}

const testSettle = 20 * time.Millisecond

func TestResolverCoalescesKeystrokes(t *testing.T) {
	checker := newScriptedChecker()
	checker.results["dept@hcdc.edu.ph"] = EmailStatus{Status: domain.StatusApproved}

	r := NewResolver(checker, nil, WithSettleDelay(testSettle))
	defer r.Stop()

	// Rapid typing: only the final value should reach the network.
	r.Input("d")
	r.Input("dept@")
	r.Input("dept@hcdc.edu.ph")

	require.Eventually(t, func() bool {
		p := r.Probe()
		return p.Result != nil && p.Result.Status == domain.StatusApproved
	}, time.Second, time.Millisecond)

	assert.Equal(t, 1, checker.callCount())
	assert.Equal(t, "dept@hcdc.edu.ph", checker.lastCall())
}

func TestResolverSkipsNonEmailInput(t *testing.T) {
	checker := newScriptedChecker()

	r := NewResolver(checker, nil, WithSettleDelay(testSettle))
	defer r.Stop()

	r.Input("not-an-email")

	p := r.Probe()
	assert.False(t, p.Checking)
	assert.Nil(t, p.Result)

	time.Sleep(3 * testSettle)
	assert.Zero(t, checker.callCount())
}

func TestResolverClearsProbeWhenEmailErased(t *testing.T) {
	checker := newScriptedChecker()
	checker.results["dept@hcdc.edu.ph"] = EmailStatus{Status: domain.StatusPending}

	r := NewResolver(checker, nil, WithSettleDelay(testSettle))
	defer r.Stop()

	r.Input("dept@hcdc.edu.ph")
	require.Eventually(t, func() bool {
		return r.Probe().Result != nil
	}, time.Second, time.Millisecond)

	// Backspacing past the @ drops the resolved status immediately.
	r.Input("dept")
	p := r.Probe()
	assert.False(t, p.Checking)
	assert.Nil(t, p.Result)
}

func TestResolverDiscardsStaleResponse(t *testing.T) {
	checker := newScriptedChecker()
	checker.results["old@hcdc.edu.ph"] = EmailStatus{Status: domain.StatusRejected}
	checker.results["new@hcdc.edu.ph"] = EmailStatus{Status: domain.StatusApproved}
	oldGate := checker.hold("old@hcdc.edu.ph")

	r := NewResolver(checker, nil, WithSettleDelay(testSettle))
	defer r.Stop()

	r.Input("old@hcdc.edu.ph")
	require.Eventually(t, func() bool {
		return checker.callCount() == 1
	}, time.Second, time.Millisecond)

	// The field moves on while the first lookup is stuck in flight.
	r.Input("new@hcdc.edu.ph")
	require.Eventually(t, func() bool {
		return r.Probe().Result != nil
	}, time.Second, time.Millisecond)

	// Releasing the stale response must not clobber the current result.
	close(oldGate)
	time.Sleep(3 * testSettle)

	p := r.Probe()
	require.NotNil(t, p.Result)
	assert.Equal(t, domain.StatusApproved, p.Result.Status)
}

func TestResolverDegradesSilentlyOnFailure(t *testing.T) {
	checker := newScriptedChecker()
	checker.err = errors.New("registry unreachable")

	r := NewResolver(checker, nil, WithSettleDelay(testSettle))
	defer r.Stop()

	r.Input("dept@hcdc.edu.ph")

	require.Eventually(t, func() bool {
		return checker.callCount() == 1
	}, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		p := r.Probe()
		return !p.Checking && p.Result == nil
	}, time.Second, time.Millisecond)
}

func TestResolverPublishesCheckingState(t *testing.T) {
	checker := newScriptedChecker()
	checker.results["dept@hcdc.edu.ph"] = EmailStatus{Status: domain.StatusApproved}
	gate := checker.hold("dept@hcdc.edu.ph")

	var mu sync.Mutex
	var seen []Probe
	onUpdate := func(p Probe) {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
	}

	r := NewResolver(checker, onUpdate, WithSettleDelay(testSettle))
	defer r.Stop()

	r.Input("dept@hcdc.edu.ph")

	require.Eventually(t, func() bool {
		return r.Probe().Checking
	}, time.Second, time.Millisecond)

	close(gate)
	require.Eventually(t, func() bool {
		return r.Probe().Result != nil
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Checking)
	require.NotNil(t, seen[1].Result)
	assert.Equal(t, domain.StatusApproved, seen[1].Result.Status)
}

func TestResolverStopCancelsPendingLookup(t *testing.T) {
	checker := newScriptedChecker()
	checker.results["dept@hcdc.edu.ph"] = EmailStatus{Status: domain.StatusApproved}

	r := NewResolver(checker, nil, WithSettleDelay(testSettle))
	r.Input("dept@hcdc.edu.ph")
	r.Stop()

	time.Sleep(3 * testSettle)
	assert.Zero(t, checker.callCount())
}
