package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/healthwatch/internal/navigation"
	"github.com/spec-kit/healthwatch/internal/service"
)

// StartEventWorkers registers the notification and history handlers on the
// dispatcher. Either service may be nil.
func StartEventWorkers(notifications *service.NotificationService, history *service.HistoryService) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if history != nil {
		history.RegisterHandlers()
	}
}

// HistoryPruner drops the audit trails of idle sessions.
type HistoryPruner interface {
	PruneIdle(ctx context.Context, cutoff time.Time) (int, error)
}

// SessionJanitor periodically evicts idle controllers from the registry's live
// map. Evicted sessions restore from the session store on their next request.
type SessionJanitor struct {
	registry  *navigation.Registry
	interval  time.Duration
	idle      time.Duration
	history   HistoryPruner
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionJanitor builds a janitor. Non-positive durations fall back to one
// minute for interval and fifteen minutes for idle.
func NewSessionJanitor(registry *navigation.Registry, interval, idle time.Duration, logger *zap.Logger) *SessionJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	if idle <= 0 {
		idle = 15 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionJanitor{registry: registry, interval: interval, idle: idle, logger: logger, now: time.Now}
}

// WithHistory makes each sweep also drop session trails with no activity for
// retention, which should match the session store TTL.
func (j *SessionJanitor) WithHistory(history HistoryPruner, retention time.Duration) *SessionJanitor {
	j.history = history
	j.retention = retention
	return j
}

// Sweep evicts once and returns the number of controllers dropped.
func (j *SessionJanitor) Sweep(ctx context.Context) int {
	now := j.now()
	evicted := j.registry.EvictIdle(now.Add(-j.idle))
	if evicted > 0 {
		j.logger.Debug("evicted idle sessions", zap.Int("count", evicted), zap.Int("live", j.registry.Live()))
	}
	if j.history != nil && j.retention > 0 {
		pruned, err := j.history.PruneIdle(ctx, now.Add(-j.retention))
		if err != nil {
			j.logger.Warn("prune session history", zap.Error(err))
		} else if pruned > 0 {
			j.logger.Debug("pruned session history", zap.Int("sessions", pruned))
		}
	}
	return evicted
}

// Run sweeps on every tick until ctx is done.
func (j *SessionJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}
