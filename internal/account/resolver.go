package account

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	acctmetrics "partnerdesk/internal/account/metrics"
)

// DefaultSettleDelay is the quiet period after the last keystroke before a
// status lookup fires.
const DefaultSettleDelay = 500 * time.Millisecond

// StatusChecker is the remote lookup behind the resolver.
type StatusChecker interface {
	CheckEmailStatus(ctx context.Context, email string) (EmailStatus, error)
}

// Resolver turns a stream of email keystrokes into at most one status
// lookup per settle period, issued for the final value typed within that
// period. Results are applied only while they still correspond to the
// current input: a slow response for an older value is discarded, never
// shown. Lookup failures degrade to "no status known" so a flaky probe
// cannot block login entry.
type Resolver struct {
	checker  StatusChecker
	settle   time.Duration
	logger   *slog.Logger
	metrics  *acctmetrics.Metrics
	onUpdate func(Probe)

	mu    sync.Mutex
	timer *time.Timer
	input string
	gen   uint64
	probe Probe
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

func WithResolverMetrics(m *acctmetrics.Metrics) ResolverOption {
	return func(r *Resolver) { r.metrics = m }
}

// WithSettleDelay overrides the debounce period. Tests use short delays.
func WithSettleDelay(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.settle = d }
}

// NewResolver creates a resolver. onUpdate is invoked (outside the
// resolver's lock) on every published state change; pass nil to poll via
// Probe instead.
func NewResolver(checker StatusChecker, onUpdate func(Probe), opts ...ResolverOption) *Resolver {
	r := &Resolver{
		checker:  checker,
		settle:   DefaultSettleDelay,
		logger:   slog.Default(),
		onUpdate: onUpdate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Input feeds the current email field value. Every call supersedes whatever
// was scheduled or in flight. Values without an @ resolve immediately to no
// status and never reach the network.
func (r *Resolver) Input(email string) {
	r.mu.Lock()
	r.input = email
	r.gen++
	gen := r.gen
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}

	if !strings.Contains(email, "@") {
		r.probe = Probe{}
		r.publishLocked()
		return
	}

	r.timer = time.AfterFunc(r.settle, func() { r.lookup(gen, email) })
	r.mu.Unlock()
}

// lookup runs after the settle delay. gen pins the keystroke generation the
// lookup belongs to; any later Input invalidates it.
func (r *Resolver) lookup(gen uint64, email string) {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.probe = Probe{Checking: true}
	if r.metrics != nil {
		r.metrics.ProbesIssued.Inc()
	}
	r.publishLocked()

	status, err := r.checker.CheckEmailStatus(context.Background(), email)

	r.mu.Lock()
	if gen != r.gen || r.input != email {
		// The field moved on while this lookup was in flight.
		if r.metrics != nil {
			r.metrics.ProbesDiscarded.Inc()
		}
		r.logger.Debug("discarding stale email probe", "email", email)
		r.mu.Unlock()
		return
	}
	if err != nil {
		// Degrade silently to "no status known" so the user can still try.
		if r.metrics != nil {
			r.metrics.ProbeFailures.Inc()
		}
		r.logger.Debug("email probe failed", "error", err)
		r.probe = Probe{}
		r.publishLocked()
		return
	}
	r.probe = Probe{Result: &status}
	r.publishLocked()
}

// publishLocked snapshots the probe, releases the lock, and notifies.
// Callers must hold r.mu; it is released on return.
func (r *Resolver) publishLocked() {
	probe := r.probe
	onUpdate := r.onUpdate
	r.mu.Unlock()
	if onUpdate != nil {
		onUpdate(probe)
	}
}

// Probe returns the current published state.
func (r *Resolver) Probe() Probe {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.probe
}

// Stop cancels any scheduled lookup. In-flight responses are still discarded
// by the generation check.
func (r *Resolver) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
