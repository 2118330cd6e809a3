package account

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/asaskevich/govalidator"

	acctmetrics "partnerdesk/internal/account/metrics"
	"partnerdesk/internal/account/session"
	"partnerdesk/pkg/domain"
	dErrors "partnerdesk/pkg/domain-errors"
	"partnerdesk/pkg/platform/sentinel"
	"partnerdesk/pkg/requestcontext"
)

// Gateway is the slice of the registry API the account service uses.
type Gateway interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Register(ctx context.Context, reg Registration) (User, error)
	ChangePassword(ctx context.Context, current, updated string) error
}

// Service runs the login and registration flows. Login consults the gate
// before spending a round trip on credentials that cannot succeed.
type Service struct {
	gateway  Gateway
	sessions session.Store
	logger   *slog.Logger
	metrics  *acctmetrics.Metrics
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *acctmetrics.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService creates an account service. sessions may be nil when the caller
// does not persist sessions.
func NewService(gateway Gateway, sessions session.Store, opts ...ServiceOption) *Service {
	s := &Service{
		gateway:  gateway,
		sessions: sessions,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login gates the attempt on the probe, then exchanges credentials. A block
// never reaches the network; the gate's message comes back as a forbidden
// domain error. The gate is advisory only: an unresolved probe falls through
// to the registry, which remains the final arbiter.
func (s *Service) Login(ctx context.Context, email, password string, probe Probe) (Session, error) {
	if decision := Decide(probe); !decision.Allow {
		if s.metrics != nil {
			s.metrics.IncrementLoginBlocked(decision.Blocked.String())
		}
		s.logger.Info("login blocked locally", "status", decision.Blocked)
		return Session{}, dErrors.New(dErrors.CodeForbidden, decision.Message)
	}

	sess, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	if s.sessions != nil {
		if err := s.sessions.Save(ctx, toRecord(sess)); err != nil {
			// The login itself succeeded; a session persistence failure is
			// logged, not surfaced.
			s.logger.Warn("failed to persist session", "error", err)
		}
	}
	return sess, nil
}

// Register validates the input locally, then submits it. The created account
// lands in pending and cannot log in until approved.
func (s *Service) Register(ctx context.Context, reg Registration) (User, error) {
	if err := validateRegistration(&reg); err != nil {
		return User{}, err
	}
	return s.gateway.Register(ctx, reg)
}

// ChangePassword updates the authenticated user's password after local
// policy checks.
func (s *Service) ChangePassword(ctx context.Context, current, updated string) error {
	if current == "" {
		return dErrors.New(dErrors.CodeBadRequest, "current password is required")
	}
	if len(updated) < 8 {
		return dErrors.New(dErrors.CodeBadRequest, "password must be at least 8 characters")
	}
	return s.gateway.ChangePassword(ctx, current, updated)
}

// RestoreSession loads a persisted session, discarding it when the token has
// expired. Returns sentinel.ErrNotFound (wrapped) when nothing usable is
// stored.
func (s *Service) RestoreSession(ctx context.Context) (Session, error) {
	if s.sessions == nil {
		return Session{}, dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "no session store configured")
	}
	rec, err := s.sessions.Load(ctx)
	if err != nil {
		return Session{}, dErrors.Wrap(err, dErrors.CodeNotFound, "no stored session")
	}
	sess, err := fromRecord(rec)
	if err != nil {
		_ = s.sessions.Clear(ctx)
		return Session{}, dErrors.Wrap(err, dErrors.CodeNotFound, "corrupt stored session")
	}
	claims, err := ParseClaims(sess.Token)
	if err != nil || claims.Expired(requestcontext.Now(ctx)) {
		_ = s.sessions.Clear(ctx)
		return Session{}, dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "stored session expired")
	}
	return sess, nil
}

func toRecord(sess Session) session.Record {
	raw, _ := json.Marshal(sess.User)
	return session.Record{Token: sess.Token, Email: sess.User.Email, UserJSON: raw}
}

func fromRecord(rec session.Record) (Session, error) {
	var user User
	if err := json.Unmarshal(rec.UserJSON, &user); err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: rec.Token}, nil
}

// Logout clears any persisted session.
func (s *Service) Logout(ctx context.Context) error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.Clear(ctx)
}

func validateRegistration(reg *Registration) error {
	reg.Email = strings.TrimSpace(reg.Email)
	reg.FullName = strings.TrimSpace(reg.FullName)

	if !govalidator.IsEmail(reg.Email) {
		return dErrors.New(dErrors.CodeBadRequest, "a valid email address is required")
	}
	if reg.FullName == "" {
		return dErrors.New(dErrors.CodeBadRequest, "full name is required")
	}
	if len(reg.Password) < 8 {
		return dErrors.New(dErrors.CodeBadRequest, "password must be at least 8 characters")
	}
	if !reg.Role.IsValid() {
		return dErrors.New(dErrors.CodeBadRequest, "invalid role")
	}

	// Department accounts must name their department; every other role has
	// it cleared, mirroring the registry's own normalization.
	if reg.Role == domain.RoleDepartment {
		if reg.Department == "" {
			return dErrors.New(dErrors.CodeBadRequest, "department is required for department role")
		}
		if !reg.Department.IsValid() {
			return dErrors.New(dErrors.CodeBadRequest, "invalid department")
		}
	} else {
		reg.Department = ""
	}
	return nil
}
