package navigation

import "errors"

var (
	// ErrUnknownView is returned in guarded mode for identifiers outside the
	// known view set.
	ErrUnknownView = errors.New("unknown view")
	// ErrLoginCancelled is returned when a login in flight was superseded by a
	// navigation, a logout, or a newer login.
	ErrLoginCancelled = errors.New("login cancelled")
	// ErrSessionNotFound is returned by the registry for unknown or expired ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoIdentity is returned when an authenticator reports success without
	// an identity.
	ErrNoIdentity = errors.New("authenticator returned no identity")
	// ErrUnknownAlertChannel is returned for alert channels other than sms/email.
	ErrUnknownAlertChannel = errors.New("unknown alert channel")
)
