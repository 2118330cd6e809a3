// Package api is the typed HTTP client for the partnership registry. It
// speaks the registry's uniform envelope and translates failures into
// domain errors carrying the upstream message verbatim when one is present.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"partnerdesk/internal/account"
	"partnerdesk/internal/directory"
	"partnerdesk/pkg/domain"
	dErrors "partnerdesk/pkg/domain-errors"
	"partnerdesk/pkg/platform/circuit"
)

// genericFailure is the fallback surfaced when the registry reports a
// failure without a message.
const genericFailure = "request failed, please try again"

// Client is the registry API client. Safe for concurrent use; the bearer
// token set after login is shared across calls.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	breaker *circuit.Breaker

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithBreaker guards every round trip with a circuit breaker: repeated
// transport failures make the client fail fast instead of hammering an
// unreachable registry on every keystroke.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

// New creates a registry client for the given base URL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token used by authenticated endpoints.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken drops the bearer token (logout).
func (c *Client) ClearToken() { c.SetToken("") }

// PublicPartnerships fetches the public directory. The registry narrows by
// department, school year, and search; the status filter is client-side only
// and never crosses the wire.
func (c *Client) PublicPartnerships(ctx context.Context, criteria directory.Criteria) ([]directory.Partnership, error) {
	q := url.Values{}
	if criteria.Department != "" {
		q.Set("department", criteria.Department.String())
	}
	if criteria.SchoolYear != "" {
		q.Set("school_year", criteria.SchoolYear)
	}
	if criteria.Search != "" {
		q.Set("search", criteria.Search)
	}
	path := "/partnerships/public"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var records []directory.Partnership
	if _, err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CheckEmailStatus probes the moderation state of an email. The outcome is
// one of approved, pending, rejected, or not_found.
func (c *Client) CheckEmailStatus(ctx context.Context, email string) (account.EmailStatus, error) {
	body := map[string]string{"email": email}

	var status account.EmailStatus
	env, err := c.do(ctx, http.MethodPost, "/auth/check-email-status", body, &status)
	if err != nil {
		return account.EmailStatus{}, err
	}
	if status.Status == "" {
		status.Status = domain.AccountStatus(env.Status)
	}
	return status, nil
}

// Login exchanges credentials for a session. The returned token is installed
// on the client for subsequent authenticated calls.
func (c *Client) Login(ctx context.Context, email, password string) (account.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session account.Session
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", body, &session); err != nil {
		return account.Session{}, err
	}
	c.SetToken(session.Token)
	return session, nil
}

// Register submits a registration. The created account lands in pending.
func (c *Client) Register(ctx context.Context, reg account.Registration) (account.User, error) {
	var data struct {
		User account.User `json:"user"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/auth/register", reg, &data); err != nil {
		return account.User{}, err
	}
	return data.User, nil
}

// ChangePassword updates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, current, updated string) error {
	body := map[string]string{"currentPassword": current, "newPassword": updated}
	_, err := c.do(ctx, http.MethodPost, "/auth/change-password", body, nil)
	return err
}

// PendingUsers fetches the full pending set. Admin token required.
func (c *Client) PendingUsers(ctx context.Context) ([]account.User, error) {
	var users []account.User
	if _, err := c.do(ctx, http.MethodGet, "/admin/users/pending", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ApproveUser approves a pending account.
func (c *Client) ApproveUser(ctx context.Context, id domain.UserID) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/users/"+id.String()+"/approve", nil, nil)
	return err
}

// RejectUser rejects a pending account with an optional reason.
func (c *Client) RejectUser(ctx context.Context, id domain.UserID, reason string) error {
	body := map[string]string{"reason": reason}
	_, err := c.do(ctx, http.MethodPost, "/admin/users/"+id.String()+"/reject", body, nil)
	return err
}

// do performs one round trip and decodes the envelope. Transport failures
// map to CodeUnavailable; success:false surfaces the upstream message
// verbatim with a code derived from the HTTP status, falling back to a
// generic string when the registry sent no message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return envelope{}, dErrors.Wrap(err, dErrors.CodeInternal, "encode request")
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return envelope{}, dErrors.Wrap(err, dErrors.CodeInternal, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	if c.breaker != nil && !c.breaker.Allow() {
		return envelope{}, dErrors.New(dErrors.CodeUnavailable, "registry unavailable")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if c.breaker != nil {
			if _, change := c.breaker.RecordFailure(); change.Opened {
				c.logger.Warn("registry breaker opened", "path", path)
			}
		}
		c.logger.Debug("registry request failed", "method", method, "path", path, "error", err)
		return envelope{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "registry unreachable")
	}
	defer resp.Body.Close()

	// Any HTTP response counts as transport success; application failures
	// are the registry speaking, not the registry being down.
	if c.breaker != nil {
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.logger.Info("registry breaker closed")
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return envelope{}, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("decode %s response", path))
	}

	if !env.Success {
		message := env.Message
		if message == "" {
			message = genericFailure
		}
		return env, dErrors.New(dErrors.FromHTTPStatus(resp.StatusCode), message)
	}

	if err := env.decodeData(out); err != nil {
		return env, dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("decode %s payload", path))
	}
	return env, nil
}
