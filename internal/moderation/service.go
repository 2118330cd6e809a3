// Package moderation implements the admin-side approve/reject workflow over
// the registry's pending user queue. The queue is a client-held snapshot,
// replaced wholesale on every fetch; actions are independent round trips
// guarded against duplicate submission per user.
package moderation

import (
	"context"
	"log/slog"
	"sync"

	"partnerdesk/internal/account"
	modmetrics "partnerdesk/internal/moderation/metrics"
	"partnerdesk/pkg/domain"
	dErrors "partnerdesk/pkg/domain-errors"
)

// AdminGateway is the slice of the registry API the moderation service uses.
// The caller must already hold an admin token; this service does not check
// roles itself.
type AdminGateway interface {
	PendingUsers(ctx context.Context) ([]account.User, error)
	ApproveUser(ctx context.Context, id domain.UserID) error
	RejectUser(ctx context.Context, id domain.UserID, reason string) error
}

// Service owns the pending user snapshot and dispatches moderation actions.
type Service struct {
	gateway AdminGateway
	logger  *slog.Logger
	metrics *modmetrics.Metrics

	mu       sync.Mutex
	pending  []account.User
	inflight map[domain.UserID]bool
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *modmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a moderation service.
func NewService(gateway AdminGateway, opts ...Option) *Service {
	s := &Service{
		gateway:  gateway,
		logger:   slog.Default(),
		inflight: make(map[domain.UserID]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh fetches the pending user list and replaces the snapshot. On
// failure the previous snapshot is kept; the list is only ever as fresh as
// its last successful fetch.
func (s *Service) Refresh(ctx context.Context) error {
	users, err := s.gateway.PendingUsers(ctx)
	if err != nil {
		s.logger.Warn("pending user fetch failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.pending = users
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.PendingListLength.Set(float64(len(users)))
	}
	return nil
}

// Pending returns a copy of the current snapshot.
func (s *Service) Pending() []account.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]account.User, len(s.pending))
	copy(out, s.pending)
	return out
}

// Approve dispatches an approval. On success the user is removed from the
// snapshot without a refetch; nobody else could have consumed an approval we
// just performed. On failure the snapshot is untouched and the registry's
// message comes back to the caller.
func (s *Service) Approve(ctx context.Context, id domain.UserID) error {
	release, err := s.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	if s.metrics != nil {
		s.metrics.IncrementAction("approve")
	}
	if err := s.gateway.ApproveUser(ctx, id); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementFailure("approve")
		}
		return err
	}

	s.mu.Lock()
	kept := s.pending[:0:0]
	for _, u := range s.pending {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.pending = kept
	remaining := len(kept)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.PendingListLength.Set(float64(remaining))
	}
	s.logger.Info("user approved", "user_id", id)
	return nil
}

// Reject dispatches a rejection with an optional reason. On success the
// whole pending list is refetched rather than spliced locally, since other
// admins may be acting on the same queue concurrently. A failed refetch
// after a successful rejection is logged, not surfaced: the action itself
// took effect.
func (s *Service) Reject(ctx context.Context, id domain.UserID, reason string) error {
	release, err := s.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	if s.metrics != nil {
		s.metrics.IncrementAction("reject")
	}
	if err := s.gateway.RejectUser(ctx, id, reason); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementFailure("reject")
		}
		return err
	}

	s.logger.Info("user rejected", "user_id", id)
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("pending list refresh after rejection failed", "error", err)
	}
	return nil
}

// acquire marks an action in flight for the user, refusing a second
// submission while the first round trip is still running.
func (s *Service) acquire(id domain.UserID) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		if s.metrics != nil {
			s.metrics.DuplicateActions.Inc()
		}
		return nil, dErrors.New(dErrors.CodeConflict, "an action for this user is already in progress")
	}
	s.inflight[id] = true
	return func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}, nil
}
