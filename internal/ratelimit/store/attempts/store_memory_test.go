package attempts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"gatekeeper/internal/ratelimit/models"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = New()
}

func increment(now time.Time) func(*models.AttemptRecord) *models.AttemptRecord {
	return func(rec *models.AttemptRecord) *models.AttemptRecord {
		if rec == nil {
			rec = &models.AttemptRecord{WindowStart: now}
		}
		rec.FailureCount++
		return rec
	}
}

// peek reads a record through Update without changing it.
func (s *InMemoryStoreSuite) peek(key string) (*models.AttemptRecord, error) {
	return s.store.Update(context.Background(), key, func(*models.AttemptRecord) *models.AttemptRecord { return nil })
}

func (s *InMemoryStoreSuite) TestUpdate() {
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	s.Run("missing record is passed as nil and created", func() {
		rec, err := s.store.Update(ctx, "42", increment(now))
		s.Require().NoError(err)
		s.Equal("42", rec.Identity)
		s.Equal(1, rec.FailureCount)
		s.Equal(now, rec.WindowStart)
	})

	s.Run("nil result leaves the store untouched", func() {
		rec, err := s.store.Update(ctx, "7", func(*models.AttemptRecord) *models.AttemptRecord { return nil })
		s.Require().NoError(err)
		s.Nil(rec)
		got, err := s.peek("7")
		s.Require().NoError(err)
		s.Nil(got)
	})

	s.Run("returned record is a copy", func() {
		rec, err := s.store.Update(ctx, "42", increment(now))
		s.Require().NoError(err)
		rec.FailureCount = 99
		got, err := s.peek("42")
		s.Require().NoError(err)
		s.Equal(2, got.FailureCount)
	})
}

func (s *InMemoryStoreSuite) TestConcurrentUpdatesAreSerialized() {
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Update(ctx, "hot", increment(now))
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.peek("hot")
	s.Require().NoError(err)
	s.Equal(100, got.FailureCount)
	s.Equal(1, s.store.Len())
}
