package circuit

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) failN(b *Breaker, n int) {
	for range n {
		b.RecordFailure()
	}
}

func (s *BreakerSuite) TestNew() {
	s.Run("starts closed with its name", func() {
		b := New("invite_issuance")
		s.False(b.IsOpen())
		s.Equal(StateClosed, b.State())
		s.Equal("invite_issuance", b.Name())
		s.Equal("closed", b.State().String())
	})

	s.Run("defaults to five failures and two successes", func() {
		b := New("invite_issuance")
		s.failN(b, 4)
		s.False(b.IsOpen())
		b.RecordFailure()
		s.True(b.IsOpen())
		s.Equal("open", b.State().String())

		b.RecordSuccess()
		s.True(b.IsOpen())
		b.RecordSuccess()
		s.False(b.IsOpen())
	})

	s.Run("ignores non-positive thresholds", func() {
		b := New("invite_issuance", WithFailureThreshold(0), WithSuccessThreshold(-1))
		s.failN(b, 4)
		s.False(b.IsOpen())
	})
}

func (s *BreakerSuite) TestRecordFailure() {
	s.Run("opens on the threshold failure", func() {
		b := New("invite_issuance", WithFailureThreshold(3))

		for range 2 {
			useFallback, change := b.RecordFailure()
			s.False(useFallback)
			s.False(change.Opened)
		}

		useFallback, change := b.RecordFailure()
		s.True(useFallback)
		s.True(change.Opened)
		s.True(b.IsOpen())
	})

	s.Run("further failures while open report no transition", func() {
		b := New("invite_issuance", WithFailureThreshold(1))
		b.RecordFailure()

		useFallback, change := b.RecordFailure()
		s.True(useFallback)
		s.False(change.Opened)
	})

	s.Run("a success in between restarts the count", func() {
		b := New("invite_issuance", WithFailureThreshold(3))
		s.failN(b, 2)
		b.RecordSuccess()

		s.failN(b, 2)
		s.False(b.IsOpen())
		b.RecordFailure()
		s.True(b.IsOpen())
	})
}

func (s *BreakerSuite) TestRecordSuccess() {
	s.Run("closes after the success threshold", func() {
		b := New("invite_issuance", WithFailureThreshold(1), WithSuccessThreshold(2))
		b.RecordFailure()

		usePrimary, change := b.RecordSuccess()
		s.False(usePrimary)
		s.False(change.Closed)
		s.True(b.IsOpen())

		usePrimary, change = b.RecordSuccess()
		s.True(usePrimary)
		s.True(change.Closed)
		s.False(b.IsOpen())
	})

	s.Run("a failure while open restarts the success count", func() {
		b := New("invite_issuance", WithFailureThreshold(1), WithSuccessThreshold(3))
		b.RecordFailure()
		b.RecordSuccess()
		b.RecordSuccess()

		b.RecordFailure()
		s.True(b.IsOpen())

		b.RecordSuccess()
		b.RecordSuccess()
		s.True(b.IsOpen())
		b.RecordSuccess()
		s.False(b.IsOpen())
	})

	s.Run("closed breaker reports primary without transition", func() {
		b := New("invite_issuance")
		usePrimary, change := b.RecordSuccess()
		s.True(usePrimary)
		s.False(change.Closed)
	})
}

func (s *BreakerSuite) TestReset() {
	b := New("invite_issuance", WithFailureThreshold(1))
	b.RecordFailure()
	s.Require().True(b.IsOpen())

	b.Reset()
	s.False(b.IsOpen())
	s.Equal(StateClosed, b.State())

	// counters are cleared too
	b2 := New("invite_issuance", WithFailureThreshold(2))
	b2.RecordFailure()
	b2.Reset()
	b2.RecordFailure()
	s.False(b2.IsOpen())
}
