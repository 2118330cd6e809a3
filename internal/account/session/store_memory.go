package session

import (
	"context"
	"sync"

	"partnerdesk/pkg/platform/sentinel"
)

// InMemoryStore keeps the session in process memory. The default for a
// single-terminal client.
type InMemoryStore struct {
	mu  sync.RWMutex
	rec *Record
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = &rec
	return nil
}

func (s *InMemoryStore) Load(_ context.Context) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rec == nil {
		return Record{}, sentinel.ErrNotFound
	}
	return *s.rec, nil
}

func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}
