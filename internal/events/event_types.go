package events

import (
	"time"

	"github.com/spec-kit/healthwatch/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionStarted  EventType = "session_started"
	EventViewChanged     EventType = "view_changed"
	EventAccessDenied    EventType = "access_denied"
	EventLoginSucceeded  EventType = "login_succeeded"
	EventLoginFailed     EventType = "login_failed"
	EventLoginCancelled  EventType = "login_cancelled"
	EventLoggedOut       EventType = "logged_out"
	EventAccountCreated  EventType = "account_created"
	EventReportSubmitted EventType = "report_submitted"
	EventReportReviewed  EventType = "report_reviewed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role      *domain.Role `json:"role,omitempty"`
	AccountID string       `json:"account_id,omitempty"`
}

// Event represents a domain event emitted by the portal.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
	// Alerts carries the session's channel preferences at publish time.
	Alerts *domain.AlertPreferences `json:"alerts,omitempty"`
}

// ViewChangedPayload payload.
type ViewChangedPayload struct {
	From domain.View `json:"from"`
	To   domain.View `json:"to"`
}

// AccessDeniedPayload payload.
type AccessDeniedPayload struct {
	Requested  domain.View `json:"requested"`
	RedirectTo domain.View `json:"redirect_to"`
	Reason     string      `json:"reason"`
}

// LoginPayload payload for login outcomes.
type LoginPayload struct {
	Email  string      `json:"email,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
	Landed domain.View `json:"landed,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// AccountCreatedPayload payload.
type AccountCreatedPayload struct {
	AccountID string      `json:"account_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
}

// ReportSubmittedPayload payload.
type ReportSubmittedPayload struct {
	Type     domain.ReportType `json:"type"`
	Category string            `json:"category"`
	Title    string            `json:"title"`
	Location string            `json:"location"`
	Severity string            `json:"severity"`
}

// ReportReviewedPayload payload.
type ReportReviewedPayload struct {
	ReportID  int                 `json:"report_id"`
	OldStatus domain.ReportStatus `json:"old_status"`
	NewStatus domain.ReportStatus `json:"new_status"`
}
