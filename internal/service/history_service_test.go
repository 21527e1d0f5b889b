package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/repository"
)

func TestHistoryRecordsSessionTrail(t *testing.T) {
	f := newFixture(t, 0)
	history := NewHistoryService(f.dispatcher, repository.NewMemorySessionHistoryRepository(0))
	history.RegisterHandlers()
	ctx := context.Background()

	controller, _, _, err := f.auth.StartSession(ctx)
	require.NoError(t, err)
	_, err = controller.Navigate(ctx, domain.ViewHelp)
	require.NoError(t, err)
	_, err = controller.Navigate(ctx, domain.ViewResources)
	require.NoError(t, err)

	entries, err := history.List(ctx, controller.ID(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "session_started", entries[0].Event)
	assert.Equal(t, "view_changed", entries[1].Event)
	assert.Equal(t, "help", entries[1].Detail["to"])
	assert.Equal(t, "access_denied", entries[2].Event)
	assert.Equal(t, "unauthenticated", entries[2].Detail["reason"])

	latest, err := history.List(ctx, controller.ID(), 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "access_denied", latest[0].Event)

	require.NoError(t, history.Forget(ctx, controller.ID()))
	entries, err = history.List(ctx, controller.ID(), 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
