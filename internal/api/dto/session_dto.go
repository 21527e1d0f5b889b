package dto

import (
	"time"

	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/navigation"
)

// AuthResponse carries the bearer token naming a session.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse is the full client-facing session state.
type SessionResponse struct {
	Mode     navigation.Mode        `json:"mode"`
	Snapshot domain.SessionSnapshot `json:"snapshot"`
	Links    navigation.Links       `json:"links"`
}

// NewSessionResponse builds the response for a controller.
func NewSessionResponse(c *navigation.Controller) SessionResponse {
	snapshot := c.Snapshot()
	return SessionResponse{
		Mode:     c.Mode(),
		Snapshot: snapshot,
		Links:    navigation.VisibleLinks(snapshot.Session, snapshot.View),
	}
}

// TransitionResponse reports a view change plus the resulting state.
type TransitionResponse struct {
	Transition navigation.Transition `json:"transition"`
	Session    SessionResponse       `json:"session"`
}

// NavigateRequest payload for POST /session/navigate.
type NavigateRequest struct {
	Page string `json:"page"`
}

// MenuRequest payload for POST /session/menu. A missing Open toggles.
type MenuRequest struct {
	Open *bool `json:"open"`
}

// LoginRequest payload for POST /session/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignupRequest payload for POST /session/signup.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

// AccountResponse is the public view of a created account.
type AccountResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AlertChannelRequest payload for PUT /session/alerts.
type AlertChannelRequest struct {
	Channel string `json:"channel"`
	Enabled *bool  `json:"enabled"`
}
