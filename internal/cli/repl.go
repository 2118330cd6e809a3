// Package cli is the terminal front end. It drives the directory browser,
// the email status probe, and the moderation queue over a line-based
// command loop.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"partnerdesk/internal/account"
	"partnerdesk/internal/api"
	"partnerdesk/internal/directory"
	"partnerdesk/internal/moderation"
	"partnerdesk/pkg/domain"
)

// REPL owns the interactive session state. Not safe for concurrent use;
// there is exactly one command loop.
type REPL struct {
	client   *api.Client
	accounts *account.Service
	resolver *account.Resolver
	browser  *directory.Browser
	queue    *moderation.Service
	logger   *slog.Logger
	pageSize int

	out     io.Writer
	session *account.Session
}

// Config wires the REPL's collaborators.
type Config struct {
	Client   *api.Client
	Accounts *account.Service
	Resolver *account.Resolver
	PageSize int
	Logger   *slog.Logger
}

// New creates a REPL. The directory browser starts with the anonymous
// viewer role; logging in rebuilds it for the authenticated role.
func New(cfg Config, out io.Writer) *REPL {
	r := &REPL{
		client:   cfg.Client,
		accounts: cfg.Accounts,
		resolver: cfg.Resolver,
		logger:   cfg.Logger,
		pageSize: cfg.PageSize,
		out:      out,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.browser = directory.NewBrowser(cfg.Client, domain.RoleViewer, cfg.PageSize, directory.WithLogger(r.logger))
	r.queue = moderation.NewService(cfg.Client, moderation.WithLogger(r.logger))
	return r
}

// Run reads commands until EOF or quit. A previously persisted session is
// restored before the first prompt.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	if sess, err := r.accounts.RestoreSession(ctx); err == nil {
		r.adopt(sess)
		fmt.Fprintf(r.out, "welcome back, %s (%s)\n", sess.User.FullName, sess.User.Role)
	}

	scanner := bufio.NewScanner(in)
	r.prompt()
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			r.prompt()
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		r.dispatch(ctx, line)
		r.prompt()
	}
	return scanner.Err()
}

func (r *REPL) prompt() {
	who := "anonymous"
	if r.session != nil {
		who = r.session.User.Email
	}
	fmt.Fprintf(r.out, "%s> ", who)
}

func (r *REPL) dispatch(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		r.printHelp()
	case "filters":
		r.cmdFilters(ctx, args)
	case "list":
		r.cmdList()
	case "page":
		r.cmdPage(args)
	case "refresh":
		r.report(r.browser.Refresh(ctx))
		r.cmdList()
	case "email":
		r.cmdEmail(args)
	case "login":
		r.cmdLogin(ctx, args)
	case "logout":
		r.cmdLogout(ctx)
	case "register":
		r.cmdRegister(ctx, args)
	case "passwd":
		r.cmdChangePassword(ctx, args)
	case "whoami":
		r.cmdWhoami()
	case "pending":
		r.cmdPending(ctx)
	case "approve":
		r.cmdApprove(ctx, args)
	case "reject":
		r.cmdReject(ctx, args)
	default:
		fmt.Fprintf(r.out, "unknown command %q, try help\n", cmd)
	}
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, `commands:
  filters [search=..] [dept=..] [status=..] [year=..]   set directory filters (no args clears)
  list                                                  show the grouped directory
  page <dept> next|prev|<n>                             navigate one department's pages
  refresh                                               refetch with current filters
  email <value>                                         type into the login email field
  login <email> <password>                              sign in
  logout                                                sign out
  register <email> <password> <full name..> role=<r> [dept=<d>]
  passwd <current> <new>                                change password
  whoami                                                show the current session
  pending | approve <id> | reject <id> [reason..]       moderation (admin)
  quit
`)
}

// report prints an operation failure, if any. Domain errors carry the
// registry's message verbatim.
func (r *REPL) report(err error) bool {
	if err != nil {
		fmt.Fprintf(r.out, "error: %s\n", err)
		return false
	}
	return true
}

func (r *REPL) cmdFilters(ctx context.Context, args []string) {
	var criteria directory.Criteria
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(r.out, "expected key=value, got %q\n", arg)
			return
		}
		switch key {
		case "search":
			criteria.Search = value
		case "dept", "department":
			dept, err := domain.ParseDepartment(value)
			if !r.report(err) {
				return
			}
			criteria.Department = dept
		case "status":
			status, err := domain.ParsePartnershipStatus(value)
			if !r.report(err) {
				return
			}
			criteria.Status = status
		case "year", "school_year":
			criteria.SchoolYear = value
		default:
			fmt.Fprintf(r.out, "unknown filter %q\n", key)
			return
		}
	}
	if r.report(r.browser.SetFilters(ctx, criteria)) {
		r.cmdList()
	}
}

func (r *REPL) cmdList() {
	renderView(r.out, r.browser.View())
}

func (r *REPL) cmdPage(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, "usage: page <dept> next|prev|<n>")
		return
	}
	dept, err := domain.ParseDepartment(args[0])
	if !r.report(err) {
		return
	}
	group, ok := r.browser.View().Group(dept)
	if !ok {
		fmt.Fprintf(r.out, "no results for %s\n", dept)
		return
	}
	switch args[1] {
	case "next":
		group.Next()
	case "prev":
		group.Prev()
	default:
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(r.out, "usage: page <dept> next|prev|<n>")
			return
		}
		group.SetPage(n)
	}
	renderGroup(r.out, group)
}

func (r *REPL) cmdEmail(args []string) {
	value := ""
	if len(args) > 0 {
		value = args[0]
	}
	r.resolver.Input(value)
	fmt.Fprintln(r.out, "checking...")
}

func (r *REPL) cmdLogin(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, "usage: login <email> <password>")
		return
	}
	sess, err := r.accounts.Login(ctx, args[0], args[1], r.resolver.Probe())
	if !r.report(err) {
		return
	}
	r.adopt(sess)
	fmt.Fprintf(r.out, "signed in as %s (%s)\n", sess.User.FullName, sess.User.Role)
}

// adopt installs a session: token on the client, role on the browser.
func (r *REPL) adopt(sess account.Session) {
	r.session = &sess
	r.client.SetToken(sess.Token)
	r.browser = directory.NewBrowser(r.client, sess.User.Role, r.pageSize, directory.WithLogger(r.logger))
}

func (r *REPL) cmdLogout(ctx context.Context) {
	if !r.report(r.accounts.Logout(ctx)) {
		return
	}
	r.session = nil
	r.client.ClearToken()
	r.browser = directory.NewBrowser(r.client, domain.RoleViewer, r.pageSize, directory.WithLogger(r.logger))
	fmt.Fprintln(r.out, "signed out")
}

func (r *REPL) cmdRegister(ctx context.Context, args []string) {
	if len(args) < 3 {
		fmt.Fprintln(r.out, "usage: register <email> <password> <full name..> role=<r> [dept=<d>]")
		return
	}
	reg := account.Registration{Email: args[0], Password: args[1]}
	var nameParts []string
	for _, arg := range args[2:] {
		switch {
		case strings.HasPrefix(arg, "role="):
			reg.Role = domain.Role(strings.TrimPrefix(arg, "role="))
		case strings.HasPrefix(arg, "dept="):
			reg.Department = domain.Department(strings.TrimPrefix(arg, "dept="))
		default:
			nameParts = append(nameParts, arg)
		}
	}
	reg.FullName = strings.Join(nameParts, " ")

	user, err := r.accounts.Register(ctx, reg)
	if !r.report(err) {
		return
	}
	fmt.Fprintf(r.out, "registered %s; your account is pending admin approval\n", user.Email)
}

func (r *REPL) cmdChangePassword(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, "usage: passwd <current> <new>")
		return
	}
	if r.session == nil {
		fmt.Fprintln(r.out, "sign in first")
		return
	}
	if r.report(r.accounts.ChangePassword(ctx, args[0], args[1])) {
		fmt.Fprintln(r.out, "password updated")
	}
}

func (r *REPL) cmdWhoami() {
	if r.session == nil {
		fmt.Fprintln(r.out, "not signed in")
		return
	}
	u := r.session.User
	fmt.Fprintf(r.out, "%s <%s> role=%s", u.FullName, u.Email, u.Role)
	if u.Department != "" {
		fmt.Fprintf(r.out, " dept=%s", u.Department)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) requireAdmin() bool {
	if r.session == nil || !r.session.User.Role.IsAdmin() {
		fmt.Fprintln(r.out, "admin access required")
		return false
	}
	return true
}

func (r *REPL) cmdPending(ctx context.Context) {
	if !r.requireAdmin() {
		return
	}
	if !r.report(r.queue.Refresh(ctx)) {
		return
	}
	renderPending(r.out, r.queue.Pending())
}

func (r *REPL) cmdApprove(ctx context.Context, args []string) {
	if !r.requireAdmin() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: approve <id>")
		return
	}
	id, err := domain.ParseUserID(args[0])
	if !r.report(err) {
		return
	}
	if r.report(r.queue.Approve(ctx, id)) {
		fmt.Fprintln(r.out, "approved")
		renderPending(r.out, r.queue.Pending())
	}
}

func (r *REPL) cmdReject(ctx context.Context, args []string) {
	if !r.requireAdmin() {
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(r.out, "usage: reject <id> [reason..]")
		return
	}
	id, err := domain.ParseUserID(args[0])
	if !r.report(err) {
		return
	}
	reason := strings.Join(args[1:], " ")
	if r.report(r.queue.Reject(ctx, id, reason)) {
		fmt.Fprintln(r.out, "rejected")
		renderPending(r.out, r.queue.Pending())
	}
}
