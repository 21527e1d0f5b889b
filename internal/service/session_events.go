package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/events"
	"github.com/spec-kit/healthwatch/internal/navigation"
)

// SessionEventPublisher returns a navigation listener that republishes
// controller changes as domain events. Menu, badge and alert toggles are not
// published.
func SessionEventPublisher(dispatcher events.Dispatcher) navigation.Listener {
	return func(ctx context.Context, change navigation.Change) {
		if dispatcher == nil {
			return
		}
		event, ok := eventFromChange(change)
		if !ok {
			return
		}
		_ = dispatcher.Publish(ctx, event)
	}
}

func eventFromChange(change navigation.Change) (events.Event, bool) {
	snapshot := change.Snapshot
	alerts := snapshot.Alerts
	event := events.Event{
		ID:        uuid.NewString(),
		SessionID: snapshot.ID,
		Actor:     actorOf(snapshot.Session),
		Timestamp: time.Now().UTC(),
		Alerts:    &alerts,
	}

	switch change.Kind {
	case navigation.ChangeCreated:
		event.Type = events.EventSessionStarted
		event.Payload = events.ViewChangedPayload{To: snapshot.View.CurrentPage}
	case navigation.ChangeNavigated:
		event.Type = events.EventViewChanged
		event.Payload = viewChanged(change)
	case navigation.ChangeRejected:
		event.Type = events.EventAccessDenied
		if t := change.Transition; t != nil {
			event.Payload = events.AccessDeniedPayload{Requested: t.Requested, RedirectTo: t.To, Reason: string(t.Reason)}
		}
	case navigation.ChangeLoggedIn:
		event.Type = events.EventLoginSucceeded
		payload := events.LoginPayload{Email: change.Email, Landed: snapshot.View.CurrentPage}
		if snapshot.Session.Role != nil {
			payload.Role = *snapshot.Session.Role
		}
		event.Payload = payload
	case navigation.ChangeLoginFailed:
		event.Type = events.EventLoginFailed
		payload := events.LoginPayload{Email: change.Email}
		if change.Err != nil {
			payload.Error = change.Err.Error()
		}
		event.Payload = payload
	case navigation.ChangeLoginCancelled:
		event.Type = events.EventLoginCancelled
		event.Payload = events.LoginPayload{Error: navigation.ErrLoginCancelled.Error()}
	case navigation.ChangeLoggedOut:
		event.Type = events.EventLoggedOut
		if change.Previous != nil {
			event.Actor = actorOf(*change.Previous)
		}
		event.Payload = viewChanged(change)
	default:
		return events.Event{}, false
	}
	return event, true
}

func viewChanged(change navigation.Change) events.ViewChangedPayload {
	if t := change.Transition; t != nil {
		return events.ViewChangedPayload{From: t.From, To: t.To}
	}
	return events.ViewChangedPayload{To: change.Snapshot.View.CurrentPage}
}

func actorOf(session domain.Session) events.Actor {
	actor := events.Actor{AccountID: session.AccountID}
	if session.Role != nil {
		role := *session.Role
		actor.Role = &role
	}
	return actor
}
