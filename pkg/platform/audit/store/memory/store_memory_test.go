package memory

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "gatekeeper/pkg/platform/audit"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	for _, subject := range []string{"1", "2", "1"} {
		require.NoError(t, s.Append(ctx, audit.Event{Subject: subject}))
	}

	bySubject, err := s.ListBySubject(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, bySubject, 2)

	recent, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2", recent[0].Subject)

	all, err := s.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestInMemoryStore_DropsOldestAtCapacity(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(WithCapacity(3))
	for i := range 5 {
		require.NoError(t, s.Append(ctx, audit.Event{ID: strconv.Itoa(i), Subject: "42"}))
	}

	assert.Equal(t, 3, s.Len())

	events, err := s.ListBySubject(ctx, "42")
	require.NoError(t, err)
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"2", "3", "4"}, ids)

	recent, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "3", recent[0].ID)
	assert.Equal(t, "4", recent[1].ID)
}

func TestInMemoryStore_ListRecentIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(WithCapacity(2))
	require.NoError(t, s.Append(ctx, audit.Event{ID: "a"}))

	recent, err := s.ListRecent(ctx, 5)
	require.NoError(t, err)
	recent[0].ID = "mutated"

	again, err := s.ListRecent(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].ID)
}
