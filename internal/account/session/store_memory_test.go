package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"partnerdesk/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func (s *MemoryStoreSuite) TestLoadEmpty() {
	_, err := s.store.Load(context.Background())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestSaveAndLoad() {
	ctx := context.Background()
	rec := Record{
		Token:    "tok-123",
		Email:    "dept@hcdc.edu.ph",
		UserJSON: []byte(`{"email":"dept@hcdc.edu.ph"}`),
	}

	s.Require().NoError(s.store.Save(ctx, rec))

	got, err := s.store.Load(ctx)
	s.Require().NoError(err)
	s.Equal(rec, got)
}

func (s *MemoryStoreSuite) TestSaveOverwrites() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, Record{Token: "first"}))
	s.Require().NoError(s.store.Save(ctx, Record{Token: "second"}))

	got, err := s.store.Load(ctx)
	s.Require().NoError(err)
	s.Equal("second", got.Token)
}

func (s *MemoryStoreSuite) TestClear() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, Record{Token: "tok"}))
	s.Require().NoError(s.store.Clear(ctx))

	_, err := s.store.Load(ctx)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestClearEmptyIsNoop() {
	s.Require().NoError(s.store.Clear(context.Background()))
}
