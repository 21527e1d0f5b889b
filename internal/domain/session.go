package domain

import (
	"strings"
	"time"
)

// Role enumerates the coarse session roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a role string.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Session is the transient authentication flag pair for one portal instance.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Role          *Role  `json:"role"`
	AccountID     string `json:"account_id,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
}

// HasRole reports whether the session is authenticated with the given role.
func (s Session) HasRole(role Role) bool {
	return s.Authenticated && s.Role != nil && *s.Role == role
}

// ViewState is the displayed page plus the mobile menu flag.
type ViewState struct {
	CurrentPage    View `json:"current_page"`
	MobileMenuOpen bool `json:"mobile_menu_open"`
}

// AlertChannel names a stakeholder alert channel on the alerts view.
type AlertChannel string

const (
	AlertChannelSMS   AlertChannel = "sms"
	AlertChannelEmail AlertChannel = "email"
)

// AlertPreferences holds the alert channel toggles.
type AlertPreferences struct {
	SMSEnabled   bool `json:"sms_enabled"`
	EmailEnabled bool `json:"email_enabled"`
}

// SessionSnapshot is a point-in-time copy of a session's controller state.
type SessionSnapshot struct {
	ID            string           `json:"id"`
	Session       Session          `json:"session"`
	View          ViewState        `json:"view"`
	Notifications int              `json:"notifications"`
	Alerts        AlertPreferences `json:"alerts"`
	LoginPending  bool             `json:"login_pending"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
