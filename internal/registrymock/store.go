package registrymock

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"partnerdesk/internal/account"
	"partnerdesk/internal/directory"
	"partnerdesk/pkg/domain"
	"partnerdesk/pkg/platform/sentinel"
)

// userRecord pairs an account with its credential. Passwords are held in
// the clear: this registry exists for local development and tests only.
type userRecord struct {
	account.User
	Password string
}

// store is the mock registry's in-memory state.
type store struct {
	mu           sync.RWMutex
	users        map[domain.UserID]*userRecord
	partnerships []directory.Partnership
}

func newStore() *store {
	return &store{users: make(map[domain.UserID]*userRecord)}
}

func (s *store) addUser(user account.User, password string) account.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == (domain.UserID{}) {
		user.ID = domain.UserID(uuid.New())
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users[user.ID] = &userRecord{User: user, Password: password}
	return user
}

func (s *store) addPartnerships(records ...directory.Partnership) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range records {
		if records[i].ID == (domain.PartnershipID{}) {
			records[i].ID = domain.PartnershipID(uuid.New())
		}
	}
	s.partnerships = append(s.partnerships, records...)
}

func (s *store) listPartnerships() []directory.Partnership {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]directory.Partnership, len(s.partnerships))
	copy(out, s.partnerships)
	return out
}

func (s *store) findByEmail(email string) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.users {
		if strings.EqualFold(rec.Email, email) {
			cp := *rec
			return &cp, true
		}
	}
	return nil, false
}

func (s *store) findByID(id domain.UserID) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, false
	}
	cp := *rec
	return &cp, true
}

func (s *store) pendingUsers() []account.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []account.User
	for _, rec := range s.users {
		if rec.Status == domain.StatusPending {
			out = append(out, rec.User)
		}
	}
	// Registration order, so the queue is stable across fetches.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Email < out[j].Email
	})
	return out
}

// setStatus transitions a pending account. Only pending accounts accept a
// moderation action.
func (s *store) setStatus(id domain.UserID, status domain.AccountStatus, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if rec.Status != domain.StatusPending {
		return sentinel.ErrInvalidState
	}
	rec.Status = status
	rec.RejectionReason = reason
	return nil
}

func (s *store) setPassword(id domain.UserID, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	rec.Password = password
	return nil
}
