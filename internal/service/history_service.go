package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/events"
	"github.com/spec-kit/healthwatch/internal/repository"
)

const defaultHistoryLimit = 50

// HistoryService records every published event into the per-session audit
// trail.
type HistoryService struct {
	dispatcher events.Dispatcher
	history    repository.SessionHistoryRepository
}

// NewHistoryService constructs the service.
func NewHistoryService(dispatcher events.Dispatcher, history repository.SessionHistoryRepository) *HistoryService {
	return &HistoryService{dispatcher: dispatcher, history: history}
}

// RegisterHandlers subscribes to every event type.
func (h *HistoryService) RegisterHandlers() {
	if h.dispatcher == nil {
		return
	}
	for _, t := range []events.EventType{
		events.EventSessionStarted,
		events.EventViewChanged,
		events.EventAccessDenied,
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventLoginCancelled,
		events.EventLoggedOut,
		events.EventAccountCreated,
		events.EventReportSubmitted,
		events.EventReportReviewed,
	} {
		h.dispatcher.Subscribe(t, h.record)
	}
}

// List returns the newest entries of a session in chronological order. limit <= 0 uses
// the default of 50.
func (h *HistoryService) List(ctx context.Context, sessionID string, limit int) ([]domain.SessionHistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return h.history.ListBySession(ctx, sessionID, limit)
}

// Forget drops a session's trail.
func (h *HistoryService) Forget(ctx context.Context, sessionID string) error {
	return h.history.DeleteBySession(ctx, sessionID)
}

// PruneIdle drops the trails of sessions idle since cutoff.
func (h *HistoryService) PruneIdle(ctx context.Context, cutoff time.Time) (int, error) {
	return h.history.PruneIdle(ctx, cutoff)
}

func (h *HistoryService) record(ctx context.Context, event events.Event) error {
	if event.SessionID == "" {
		return nil
	}
	return h.history.Append(ctx, domain.SessionHistoryEntry{
		ID:        event.ID,
		SessionID: event.SessionID,
		Event:     string(event.Type),
		Role:      event.Actor.Role,
		Detail:    payloadDetail(event.Payload),
		CreatedAt: event.Timestamp,
	})
}

// payloadDetail flattens a typed payload into its JSON object form.
func payloadDetail(payload any) map[string]any {
	if payload == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	detail := map[string]any{}
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil
	}
	return detail
}
