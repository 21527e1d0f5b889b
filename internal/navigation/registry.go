package navigation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/healthwatch/internal/repository"
)

// Registry owns the live controllers and mirrors their state into a
// SessionRepository.
type Registry struct {
	mu        sync.Mutex
	mode      Mode
	store     repository.SessionRepository
	live      map[string]*Controller
	listeners []Listener
	logger    *zap.Logger
}

// NewRegistry builds a registry. Listeners are attached to every controller
// it creates or restores.
func NewRegistry(mode Mode, store repository.SessionRepository, logger *zap.Logger, listeners ...Listener) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		mode:      mode,
		store:     store,
		live:      make(map[string]*Controller),
		listeners: listeners,
		logger:    logger,
	}
}

// Mode returns the gating mode applied to new controllers.
func (r *Registry) Mode() Mode {
	return r.mode
}

// Create starts a new anonymous session.
func (r *Registry) Create(ctx context.Context) (*Controller, error) {
	c := NewController(uuid.NewString(), r.mode, r.options()...)
	if err := r.store.Save(ctx, c.Snapshot()); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.live[c.ID()] = c
	r.mu.Unlock()

	c.notify(ctx, Change{Kind: ChangeCreated, Snapshot: c.Snapshot()})
	return c, nil
}

// Get returns the live controller for id, restoring it from the store when it
// is not held in memory.
func (r *Registry) Get(ctx context.Context, id string) (*Controller, error) {
	r.mu.Lock()
	if c, ok := r.live[id]; ok {
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	snapshot, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.live[id]; ok {
		return c, nil
	}
	c := RestoreController(*snapshot, r.mode, r.options()...)
	r.live[id] = c
	r.logger.Debug("session restored", zap.String("session_id", id))
	return c, nil
}

// Evict drops the in-memory controller while keeping the stored snapshot.
func (r *Registry) Evict(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
}

// EvictIdle drops live controllers untouched since cutoff. Their snapshots stay
// in the store, so a later Get restores them. Controllers with a login in
// flight are kept. It returns the number evicted.
func (r *Registry) EvictIdle(cutoff time.Time) int {
	r.mu.Lock()
	candidates := make([]*Controller, 0, len(r.live))
	for _, c := range r.live {
		candidates = append(candidates, c)
	}
	r.mu.Unlock()

	evicted := 0
	for _, c := range candidates {
		snapshot := c.Snapshot()
		if snapshot.LoginPending || !snapshot.UpdatedAt.Before(cutoff) {
			continue
		}
		r.mu.Lock()
		if r.live[c.ID()] == c {
			delete(r.live, c.ID())
			evicted++
		}
		r.mu.Unlock()
	}
	return evicted
}

// Live returns the number of controllers held in memory.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Delete removes the session everywhere. The live controller is closed first,
// so a login in flight is cancelled and nothing saves the snapshot again.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	c, ok := r.live[id]
	delete(r.live, id)
	r.mu.Unlock()
	if ok {
		c.Close()
	}
	return r.store.Delete(ctx, id)
}

func (r *Registry) options() []Option {
	opts := []Option{WithListener(r.persist)}
	for _, l := range r.listeners {
		opts = append(opts, WithListener(l))
	}
	return opts
}

func (r *Registry) persist(ctx context.Context, change Change) {
	if change.Kind == ChangeCreated {
		return
	}
	c := change.source
	if c == nil || c.Closed() {
		return
	}
	// listeners run unlocked, so store the freshest state rather than the
	// snapshot attached to this change
	snapshot := c.Snapshot()
	ctx = context.WithoutCancel(ctx)
	if err := r.store.Save(ctx, snapshot); err != nil {
		r.logger.Warn("persist session snapshot",
			zap.String("session_id", snapshot.ID),
			zap.String("change", string(change.Kind)),
			zap.Error(err))
		return
	}
	// Delete may have run while saving
	if c.Closed() {
		if err := r.store.Delete(ctx, snapshot.ID); err != nil {
			r.logger.Warn("drop closed session snapshot", zap.String("session_id", snapshot.ID), zap.Error(err))
		}
	}
}
