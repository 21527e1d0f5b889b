package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/healthwatch/internal/domain"
)

// SessionHistoryRepository stores per-session audit entries.
type SessionHistoryRepository interface {
	Append(ctx context.Context, entry domain.SessionHistoryEntry) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]domain.SessionHistoryEntry, error)
	DeleteBySession(ctx context.Context, sessionID string) error
	// PruneIdle drops the trails of sessions with no entry appended since
	// cutoff and returns how many sessions were dropped.
	PruneIdle(ctx context.Context, cutoff time.Time) (int, error)
}

type memorySessionHistoryRepository struct {
	mu         sync.RWMutex
	perSession int
	now        func() time.Time
	entries    map[string][]domain.SessionHistoryEntry
	lastSeen   map[string]time.Time
}

// NewMemorySessionHistoryRepository keeps at most perSession entries for each
// session, dropping the oldest first. perSession <= 0 defaults to 100.
func NewMemorySessionHistoryRepository(perSession int) SessionHistoryRepository {
	if perSession <= 0 {
		perSession = 100
	}
	return &memorySessionHistoryRepository{
		perSession: perSession,
		now:        time.Now,
		entries:    make(map[string][]domain.SessionHistoryEntry),
		lastSeen:   make(map[string]time.Time),
	}
}

func (r *memorySessionHistoryRepository) Append(_ context.Context, entry domain.SessionHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.entries[entry.SessionID], entry)
	if len(list) > r.perSession {
		list = append([]domain.SessionHistoryEntry(nil), list[len(list)-r.perSession:]...)
	}
	r.entries[entry.SessionID] = list
	r.lastSeen[entry.SessionID] = r.now()
	return nil
}

// ListBySession returns the newest limit entries in chronological order.
func (r *memorySessionHistoryRepository) ListBySession(_ context.Context, sessionID string, limit int) ([]domain.SessionHistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.entries[sessionID]
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	out := make([]domain.SessionHistoryEntry, len(list))
	copy(out, list)
	return out, nil
}

func (r *memorySessionHistoryRepository) DeleteBySession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
	delete(r.lastSeen, sessionID)
	return nil
}

func (r *memorySessionHistoryRepository) PruneIdle(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pruned := 0
	for id, seen := range r.lastSeen {
		if seen.Before(cutoff) {
			delete(r.entries, id)
			delete(r.lastSeen, id)
			pruned++
		}
	}
	return pruned, nil
}
