package directory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	dirmetrics "partnerdesk/internal/directory/metrics"
	"partnerdesk/pkg/domain"
	dErrors "partnerdesk/pkg/domain-errors"
)

// Lister fetches partnership records from the upstream registry.
type Lister interface {
	PublicPartnerships(ctx context.Context, criteria Criteria) ([]Partnership, error)
}

// Browser owns the cached record list and the grouped view built from it.
// Every filter change issues a fresh fetch; the cache is replaced wholesale
// on success, never mutated in place. When responses arrive out of order,
// only the last-issued fetch's result is applied.
type Browser struct {
	lister   Lister
	role     domain.Role
	pageSize int
	logger   *slog.Logger
	metrics  *dirmetrics.Metrics

	mu       sync.Mutex
	criteria Criteria
	records  []Partnership
	view     *GroupedView
	gen      uint64
}

// Option configures a Browser.
type Option func(*Browser)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Browser) { b.logger = logger }
}

func WithMetrics(m *dirmetrics.Metrics) Option {
	return func(b *Browser) { b.metrics = m }
}

// NewBrowser creates a directory browser for a role. The role decides which
// criteria fields are honored (the status filter is admin-only).
func NewBrowser(lister Lister, role domain.Role, pageSize int, opts ...Option) *Browser {
	b := &Browser{
		lister:   lister,
		role:     role,
		pageSize: pageSize,
		logger:   slog.Default(),
		view:     NewGroupedView(nil, pageSize),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetFilters replaces the active criteria and fetches the matching records.
// The registry narrows by department, school year, and search; the local
// evaluator then re-applies the full criteria so substring school-year and
// the admin-only status filter hold regardless of upstream behavior.
//
// Concurrent calls follow last-request-wins: a response belonging to a
// superseded call is discarded without touching the cache.
func (b *Browser) SetFilters(ctx context.Context, criteria Criteria) error {
	criteria = criteria.ForRole(b.role)

	b.mu.Lock()
	b.criteria = criteria
	b.gen++
	gen := b.gen
	b.mu.Unlock()

	return b.fetch(ctx, criteria, gen)
}

// Refresh re-fetches with the current criteria.
func (b *Browser) Refresh(ctx context.Context) error {
	b.mu.Lock()
	criteria := b.criteria
	b.gen++
	gen := b.gen
	b.mu.Unlock()

	return b.fetch(ctx, criteria, gen)
}

func (b *Browser) fetch(ctx context.Context, criteria Criteria, gen uint64) error {
	if b.metrics != nil {
		b.metrics.FetchesIssued.Inc()
		defer b.metrics.ObserveFetch(time.Now())
	}

	records, err := b.lister.PublicPartnerships(ctx, criteria)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		// A newer fetch was issued while this one was in flight.
		if b.metrics != nil {
			b.metrics.StaleDiscarded.Inc()
		}
		b.logger.Debug("discarding stale directory response", "generation", gen, "latest", b.gen)
		return nil
	}

	if err != nil {
		if b.metrics != nil {
			b.metrics.FetchFailures.Inc()
		}
		b.records = nil
		b.view = NewGroupedView(nil, b.pageSize)
		return dErrors.Wrap(err, dErrors.CodeOf(err), "fetch partnerships")
	}

	b.records = Apply(records, criteria)
	b.view = NewGroupedView(b.records, b.pageSize)
	return nil
}

// View returns the current grouped view. The view carries the per-group page
// state; it is replaced (with pages reset) whenever a fetch lands.
func (b *Browser) View() *GroupedView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// Criteria returns the active filter criteria.
func (b *Browser) Criteria() Criteria {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.criteria
}
