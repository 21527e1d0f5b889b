package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/healthwatch/internal/domain"
)

func newRedisSessionRepository(t *testing.T, ttl time.Duration) (SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionRepository(client, ttl), server
}

func TestRedisSessionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, server := newRedisSessionRepository(t, time.Hour)

	role := domain.RoleAdmin
	updated := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	snapshot := domain.SessionSnapshot{
		ID: "s1",
		Session: domain.Session{
			Authenticated: true,
			Role:          &role,
			AccountID:     "acc-1",
			DisplayName:   "Health Officer",
		},
		View:          domain.ViewState{CurrentPage: domain.ViewIncidentMonitoring},
		Notifications: 1,
		Alerts:        domain.AlertPreferences{SMSEnabled: false, EmailEnabled: true},
		CreatedAt:     updated.Add(-time.Hour),
		UpdatedAt:     updated,
	}
	require.NoError(t, repo.Save(ctx, snapshot))
	assert.True(t, server.Exists(redisSessionPrefix+"s1"))
	assert.Equal(t, time.Hour, server.TTL(redisSessionPrefix+"s1"))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got.Session.Role)
	assert.Equal(t, domain.RoleAdmin, *got.Session.Role)
	assert.True(t, got.Session.HasRole(domain.RoleAdmin))
	assert.Equal(t, domain.ViewIncidentMonitoring, got.View.CurrentPage)
	assert.Equal(t, "acc-1", got.Session.AccountID)
	assert.Equal(t, 1, got.Notifications)
	assert.False(t, got.Alerts.SMSEnabled)
	assert.True(t, got.UpdatedAt.Equal(updated))
}

func TestRedisSessionRepositoryAnonymousSession(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRedisSessionRepository(t, time.Hour)

	require.NoError(t, repo.Save(ctx, domain.SessionSnapshot{ID: "anon", View: domain.ViewState{CurrentPage: domain.ViewHome}}))
	got, err := repo.Get(ctx, "anon")
	require.NoError(t, err)
	assert.Nil(t, got.Session.Role)
	assert.False(t, got.Session.Authenticated)
}

func TestRedisSessionRepositoryExpiryAndDelete(t *testing.T) {
	ctx := context.Background()
	repo, server := newRedisSessionRepository(t, time.Minute)

	require.NoError(t, repo.Save(ctx, domain.SessionSnapshot{ID: "s1"}))
	require.NoError(t, repo.Save(ctx, domain.SessionSnapshot{ID: "s2"}))

	server.FastForward(2 * time.Minute)
	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, domain.SessionSnapshot{ID: "s2"}))
	require.NoError(t, repo.Delete(ctx, "s2"))
	_, err = repo.Get(ctx, "s2")
	assert.ErrorIs(t, err, ErrNotFound)
}
