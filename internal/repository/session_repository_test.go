package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/healthwatch/internal/domain"
)

func TestMemorySessionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository(time.Minute)

	snap := domain.SessionSnapshot{ID: "s1", View: domain.ViewState{CurrentPage: domain.ViewHelp}}
	require.NoError(t, repo.Save(ctx, snap))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewHelp, got.View.CurrentPage)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySessionRepositoryExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 12, 20, 10, 0, 0, 0, time.UTC)
	repo := newMemorySessionRepository(time.Minute, func() time.Time { return now })

	require.NoError(t, repo.Save(ctx, domain.SessionSnapshot{ID: "s1"}))

	now = now.Add(30 * time.Second)
	_, err := repo.Get(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionHistoryKeepsNewestEntries(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionHistoryRepository(3)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, domain.SessionHistoryEntry{SessionID: "s1", Event: fmt.Sprintf("e%d", i)}))
	}
	require.NoError(t, repo.Append(ctx, domain.SessionHistoryEntry{SessionID: "s2", Event: "other"}))

	entries, err := repo.ListBySession(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "e2", entries[0].Event)
	assert.Equal(t, "e4", entries[2].Event)

	entries, err = repo.ListBySession(ctx, "s1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"e3", "e4"}, []string{entries[0].Event, entries[1].Event})

	require.NoError(t, repo.DeleteBySession(ctx, "s1"))
	entries, err = repo.ListBySession(ctx, "s1", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSessionHistoryPruneIdle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionHistoryRepository(0).(*memorySessionHistoryRepository)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	repo.now = func() time.Time { return base }
	require.NoError(t, repo.Append(ctx, domain.SessionHistoryEntry{SessionID: "old", Event: "session_started"}))
	repo.now = func() time.Time { return base.Add(time.Hour) }
	require.NoError(t, repo.Append(ctx, domain.SessionHistoryEntry{SessionID: "fresh", Event: "session_started"}))

	pruned, err := repo.PruneIdle(ctx, base.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	entries, err := repo.ListBySession(ctx, "old", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
	entries, err = repo.ListBySession(ctx, "fresh", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Len(t, repo.lastSeen, 1)
}
