package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/healthwatch/internal/domain"
)

// SessionRepository stores session snapshots for a bounded time.
type SessionRepository interface {
	Save(ctx context.Context, snapshot domain.SessionSnapshot) error
	Get(ctx context.Context, id string) (*domain.SessionSnapshot, error)
	Delete(ctx context.Context, id string) error
}

type memorySessionEntry struct {
	snapshot  domain.SessionSnapshot
	expiresAt time.Time
}

type memorySessionRepository struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memorySessionEntry
}

// NewMemorySessionRepository keeps snapshots in process memory. Entries older
// than ttl are dropped on access; ttl <= 0 keeps them until deleted.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return newMemorySessionRepository(ttl, time.Now)
}

func newMemorySessionRepository(ttl time.Duration, now func() time.Time) *memorySessionRepository {
	return &memorySessionRepository{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]memorySessionEntry),
	}
}

func (r *memorySessionRepository) Save(_ context.Context, snapshot domain.SessionSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry := memorySessionEntry{snapshot: snapshot}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}
	r.entries[snapshot.ID] = entry
	r.evictExpiredLocked()
	return nil
}

func (r *memorySessionRepository) Get(_ context.Context, id string) (*domain.SessionSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if r.expired(entry) {
		delete(r.entries, id)
		return nil, ErrNotFound
	}
	snapshot := entry.snapshot
	return &snapshot, nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

func (r *memorySessionRepository) expired(entry memorySessionEntry) bool {
	return !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt)
}

func (r *memorySessionRepository) evictExpiredLocked() {
	for id, entry := range r.entries {
		if r.expired(entry) {
			delete(r.entries, id)
		}
	}
}

const redisSessionPrefix = "healthwatch:session:"

type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository stores snapshots as JSON values expiring after ttl.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{client: client, ttl: ttl}
}

func (r *redisSessionRepository) Save(ctx context.Context, snapshot domain.SessionSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisSessionPrefix+snapshot.ID, payload, r.ttl).Err()
}

func (r *redisSessionRepository) Get(ctx context.Context, id string) (*domain.SessionSnapshot, error) {
	payload, err := r.client.Get(ctx, redisSessionPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var snapshot domain.SessionSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisSessionPrefix+id).Err()
}
