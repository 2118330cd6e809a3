package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerdesk/internal/account"
	"partnerdesk/internal/account/session"
	"partnerdesk/internal/api"
	"partnerdesk/internal/directory"
	"partnerdesk/internal/registrymock"
	"partnerdesk/pkg/domain"
)

// syncBuffer lets the test read output while the command loop writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixture struct {
	registry *registrymock.Server
	upstream *httptest.Server
	client   *api.Client
	resolver *account.Resolver
	repl     *REPL
	out      *syncBuffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry := registrymock.New(registrymock.WithLogger(logger))
	upstream := httptest.NewServer(registry)
	t.Cleanup(upstream.Close)

	client := api.New(upstream.URL, 5*time.Second, api.WithLogger(logger))
	accounts := account.NewService(client, session.NewInMemory(), account.WithLogger(logger))
	resolver := account.NewResolver(client, nil,
		account.WithResolverLogger(logger),
		account.WithSettleDelay(10*time.Millisecond),
	)
	t.Cleanup(resolver.Stop)

	out := &syncBuffer{}
	repl := New(Config{
		Client:   client,
		Accounts: accounts,
		Resolver: resolver,
		PageSize: 2,
		Logger:   logger,
	}, out)

	return &fixture{
		registry: registry,
		upstream: upstream,
		client:   client,
		resolver: resolver,
		repl:     repl,
		out:      out,
	}
}

func seedDirectory(f *fixture) {
	f.registry.SeedPartnerships(
		directory.Partnership{BusinessName: "Metro Bank", Department: "STE", SchoolYear: "2024-2025"},
		directory.Partnership{BusinessName: "Harbor Bank", Department: "STE", SchoolYear: "2024-2025"},
		directory.Partnership{BusinessName: "Coast Bank", Department: "STE", SchoolYear: "2023-2024"},
		directory.Partnership{BusinessName: "City Mall", Department: "CET", SchoolYear: "2024-2025"},
	)
}

func TestREPLDirectoryFlow(t *testing.T) {
	f := newFixture(t)
	seedDirectory(f)

	script := strings.Join([]string{
		"filters search=bank",
		"page STE next",
		"filters search=bank year=2024-2025",
		"quit",
	}, "\n")

	err := f.repl.Run(context.Background(), strings.NewReader(script))
	require.NoError(t, err)

	got := f.out.String()
	assert.Contains(t, got, "3 partnership(s) in 1 department(s)")
	assert.Contains(t, got, "page 1/2")
	assert.Contains(t, got, "page 2/2")
	assert.Contains(t, got, "Coast Bank")
	// Narrowing by school year leaves one page.
	assert.Contains(t, got, "2 partnership(s) in 1 department(s)")
	assert.NotContains(t, got, "City Mall")
}

func TestREPLUnknownCommand(t *testing.T) {
	f := newFixture(t)

	err := f.repl.Run(context.Background(), strings.NewReader("frobnicate\nquit\n"))
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), `unknown command "frobnicate"`)
}

func TestREPLLoginGateBlocksPendingAccount(t *testing.T) {
	f := newFixture(t)
	f.registry.SeedUser(account.User{
		Email: "pending@hcdc.edu.ph", FullName: "Pending P", Role: domain.RoleViewer,
		Status: domain.StatusPending,
	}, "secret123")

	in, feed := io.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- f.repl.Run(context.Background(), in)
	}()

	_, err := fmt.Fprintln(feed, "email pending@hcdc.edu.ph")
	require.NoError(t, err)

	// Wait for the probe to settle before submitting.
	require.Eventually(t, func() bool {
		return f.resolver.Probe().Result != nil
	}, time.Second, time.Millisecond)

	fmt.Fprintln(feed, "login pending@hcdc.edu.ph secret123")
	fmt.Fprintln(feed, "quit")
	require.NoError(t, feed.Close())
	require.NoError(t, <-done)

	got := f.out.String()
	assert.Contains(t, got, "pending admin approval")
	assert.NotContains(t, got, "signed in as")
}

func TestREPLModerationFlow(t *testing.T) {
	f := newFixture(t)
	f.registry.SeedUser(account.User{
		Email: "admin@hcdc.edu.ph", FullName: "Site Admin", Role: domain.RoleAdmin,
		Status: domain.StatusApproved,
	}, "adminpass123")
	applicant := f.registry.SeedUser(account.User{
		Email: "coord@hcdc.edu.ph", FullName: "Dept Coordinator", Role: domain.RoleDepartment,
		Department: "STE", Status: domain.StatusPending,
	}, "secret123")

	script := strings.Join([]string{
		"pending",
		"login admin@hcdc.edu.ph adminpass123",
		"pending",
		"approve " + applicant.ID.String(),
		"logout",
		"login coord@hcdc.edu.ph secret123",
		"whoami",
		"quit",
	}, "\n")

	err := f.repl.Run(context.Background(), strings.NewReader(script))
	require.NoError(t, err)

	got := f.out.String()
	// Before signing in the moderation surface is refused locally.
	assert.Contains(t, got, "admin access required")
	assert.Contains(t, got, "1 pending account(s)")
	assert.Contains(t, got, "coord@hcdc.edu.ph")
	assert.Contains(t, got, "approved")
	assert.Contains(t, got, "no pending accounts")
	// The freshly approved coordinator can sign in.
	assert.Contains(t, got, "signed in as Dept Coordinator (department)")
	assert.Contains(t, got, "dept=STE")
}

func TestREPLRegisterThenProbeSeesPending(t *testing.T) {
	f := newFixture(t)

	script := strings.Join([]string{
		"register new@hcdc.edu.ph secret123 New Coordinator role=department dept=STE",
		"quit",
	}, "\n")
	err := f.repl.Run(context.Background(), strings.NewReader(script))
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "pending admin approval")

	f.resolver.Input("new@hcdc.edu.ph")
	require.Eventually(t, func() bool {
		p := f.resolver.Probe()
		return p.Result != nil && p.Result.Status == domain.StatusPending
	}, time.Second, time.Millisecond)
}
