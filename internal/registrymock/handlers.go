package registrymock

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"partnerdesk/internal/account"
	"partnerdesk/internal/directory"
	"partnerdesk/pkg/domain"
	dErrors "partnerdesk/pkg/domain-errors"
	"partnerdesk/pkg/platform/httputil"
	"partnerdesk/pkg/platform/sentinel"
	"partnerdesk/pkg/requestcontext"
)

type contextKeyUser struct{}

func userFromContext(ctx context.Context) (account.User, bool) {
	user, ok := ctx.Value(contextKeyUser{}).(account.User)
	return user, ok
}

// requireAuth validates the bearer token and loads the account it names.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
			return
		}
		claims, err := s.verifyToken(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		id, err := domain.ParseUserID(claims.UserID)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
			return
		}
		rec, ok := s.store.findByID(id)
		if !ok {
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
			return
		}
		ctx := context.WithValue(r.Context(), contextKeyUser{}, rec.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates the moderation surface on the authenticated role.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFromContext(r.Context())
		if !ok || !user.Role.IsAdmin() {
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handlePublicPartnerships narrows the directory by the supported query
// parameters. Status is deliberately not one of them; status filtering is an
// admin-side client concern.
func (s *Server) handlePublicPartnerships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := directory.Criteria{
		Search:     q.Get("search"),
		SchoolYear: q.Get("school_year"),
	}
	if raw := q.Get("department"); raw != "" {
		dept, err := domain.ParseDepartment(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		criteria.Department = dept
	}

	records := directory.Apply(s.store.listPartnerships(), criteria)
	raw, err := json.Marshal(records)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "encode partnerships"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{Success: true, Data: raw, Count: len(records)})
}

func (s *Server) handleCheckEmailStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "email is required"))
		return
	}

	status := account.EmailStatus{Status: domain.StatusNotFound}
	if rec, ok := s.store.findByEmail(req.Email); ok {
		status = account.EmailStatus{Status: rec.Status, RejectionReason: rec.RejectionReason}
	}

	raw, err := json.Marshal(status)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "encode status"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{
		Success: true,
		Data:    raw,
		Status:  status.Status.String(),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	rec, ok := s.store.findByEmail(req.Email)
	if !ok || rec.Password != req.Password {
		s.countRefusedLogin()
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid credentials."))
		return
	}

	// The registry is the final arbiter; the client gate is advisory.
	switch rec.Status {
	case domain.StatusPending:
		s.countRefusedLogin()
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "Your account is pending admin approval."))
		return
	case domain.StatusRejected:
		s.countRefusedLogin()
		message := "Your account has been rejected."
		if rec.RejectionReason != "" {
			message += " Reason: " + rec.RejectionReason
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, message))
		return
	}

	token, err := s.issueToken(rec.User, requestcontext.Now(r.Context()))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "sign token"))
		return
	}
	if s.metrics != nil {
		s.metrics.SessionsIssued.Inc()
	}
	httputil.WriteSuccess(w, http.StatusOK, account.Session{User: rec.User, Token: token}, "")
}

func (s *Server) countRefusedLogin() {
	if s.metrics != nil {
		s.metrics.LoginsRefused.Inc()
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req account.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "a valid email address is required"))
		return
	}
	if req.FullName == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "full name is required"))
		return
	}
	if len(req.Password) < 8 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "password must be at least 8 characters"))
		return
	}
	if !req.Role.IsValid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid role"))
		return
	}
	if req.Role == domain.RoleDepartment && !req.Department.IsValid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "department is required for department role"))
		return
	}
	if _, exists := s.store.findByEmail(req.Email); exists {
		httputil.WriteError(w, dErrors.New(dErrors.CodeConflict, "An account with this email already exists."))
		return
	}

	user := s.store.addUser(account.User{
		FullName:   req.FullName,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		Status:     domain.StatusPending,
		CreatedAt:  requestcontext.Now(r.Context()).UTC(),
	}, req.Password)

	if s.metrics != nil {
		s.metrics.RegistrationsTotal.Inc()
	}
	httputil.WriteSuccess(w, http.StatusCreated, struct {
		User account.User `json:"user"`
	}{User: user}, "Registration received. An admin will review your account.")
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if len(req.NewPassword) < 8 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "password must be at least 8 characters"))
		return
	}

	rec, ok := s.store.findByID(user.ID)
	if !ok || rec.Password != req.CurrentPassword {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Current password is incorrect."))
		return
	}
	if err := s.store.setPassword(user.ID, req.NewPassword); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "update password"))
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "Password updated.")
}

func (s *Server) handlePendingUsers(w http.ResponseWriter, r *http.Request) {
	users := s.store.pendingUsers()
	raw, err := json.Marshal(users)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "encode users"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{Success: true, Data: raw, Count: len(users)})
}

func (s *Server) handleApproveUser(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := s.moderate(id, domain.StatusApproved, ""); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "User approved.")
}

func (s *Server) handleRejectUser(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if r.Body != nil {
		// The reason is optional; an empty or absent body is fine.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := s.moderate(id, domain.StatusRejected, req.Reason); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "User rejected.")
}

func (s *Server) moderate(id domain.UserID, status domain.AccountStatus, reason string) error {
	err := s.store.setStatus(id, status, reason)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "User not found.")
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeConflict, "User is not pending.")
	}
	return err
}
