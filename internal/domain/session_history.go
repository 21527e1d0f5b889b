package domain

import "time"

// SessionHistoryEntry is one audit trail entry of a session.
type SessionHistoryEntry struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id"`
	Event     string         `json:"event"`
	Role      *Role          `json:"role,omitempty"`
	Detail    map[string]any `json:"detail,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
