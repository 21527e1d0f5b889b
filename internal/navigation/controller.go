package navigation

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/healthwatch/internal/domain"
)

// Mode selects how navigation targets are gated.
type Mode string

const (
	// ModePermissive accepts any identifier from any session.
	ModePermissive Mode = "permissive"
	// ModeGuarded rejects unknown identifiers and redirects sessions lacking
	// the required role to the login view.
	ModeGuarded Mode = "guarded"
)

// ParseMode maps a config value to a Mode, defaulting to guarded.
func ParseMode(raw string) Mode {
	if Mode(raw) == ModePermissive {
		return ModePermissive
	}
	return ModeGuarded
}

// RejectReason explains a redirected navigation.
type RejectReason string

const (
	ReasonNone            RejectReason = ""
	ReasonUnauthenticated RejectReason = "unauthenticated"
	ReasonForbidden       RejectReason = "forbidden"
)

// Transition describes the outcome of a navigation request.
type Transition struct {
	From      domain.View  `json:"from"`
	To        domain.View  `json:"to"`
	Requested domain.View  `json:"requested"`
	Rejected  bool         `json:"rejected"`
	Reason    RejectReason `json:"reason,omitempty"`
}

// ChangeKind tags what happened to a controller.
type ChangeKind string

const (
	ChangeCreated        ChangeKind = "created"
	ChangeNavigated      ChangeKind = "navigated"
	ChangeRejected       ChangeKind = "rejected"
	ChangeMenu           ChangeKind = "menu"
	ChangeLoginStarted   ChangeKind = "login_started"
	ChangeLoggedIn       ChangeKind = "logged_in"
	ChangeLoginFailed    ChangeKind = "login_failed"
	ChangeLoginCancelled ChangeKind = "login_cancelled"
	ChangeLoggedOut      ChangeKind = "logged_out"
	ChangeNotifications  ChangeKind = "notifications"
	ChangeAlerts         ChangeKind = "alerts"
)

// Change is delivered to listeners after every applied mutation.
type Change struct {
	Kind       ChangeKind
	Snapshot   domain.SessionSnapshot
	Transition *Transition
	// Previous is the session before a logout cleared it.
	Previous *domain.Session
	Email    string
	Err      error

	source *Controller
}

// Listener observes controller changes. It runs without the controller lock.
type Listener func(ctx context.Context, change Change)

// Credentials is the login form payload.
type Credentials struct {
	Email    string
	Password string
	Role     domain.Role
}

// Identity is a successfully authenticated principal.
type Identity struct {
	AccountID   string
	DisplayName string
	Role        domain.Role
}

// Authenticator checks credentials. Implementations must honor ctx
// cancellation.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (*Identity, error)
}

const initialNotifications = 3

type loginAttempt struct {
	cancel    context.CancelFunc
	startView domain.View
	cancelled bool
}

// Controller owns the view and session state of one portal session. All
// mutations go through its methods.
type Controller struct {
	mu            sync.Mutex
	id            string
	mode          Mode
	session       domain.Session
	view          domain.ViewState
	notifications int
	alerts        domain.AlertPreferences
	pending       *loginAttempt
	closed        bool
	createdAt     time.Time
	updatedAt     time.Time
	now           func() time.Time
	listeners     []Listener
}

// Option customizes a Controller.
type Option func(*Controller)

// WithListener registers a change listener.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		if l != nil {
			c.listeners = append(c.listeners, l)
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController builds an anonymous controller on the default view.
func NewController(id string, mode Mode, opts ...Option) *Controller {
	c := &Controller{
		id:            id,
		mode:          mode,
		view:          domain.ViewState{CurrentPage: domain.DefaultView},
		notifications: initialNotifications,
		alerts:        domain.AlertPreferences{SMSEnabled: true, EmailEnabled: true},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.createdAt = c.now()
	c.updatedAt = c.createdAt
	return c
}

// RestoreController rebuilds a controller from a stored snapshot. A login that
// was pending when the snapshot was taken is not resumed.
func RestoreController(snapshot domain.SessionSnapshot, mode Mode, opts ...Option) *Controller {
	c := NewController(snapshot.ID, mode, opts...)
	c.session = snapshot.Session
	c.view = snapshot.View
	c.notifications = snapshot.Notifications
	c.alerts = snapshot.Alerts
	if !snapshot.CreatedAt.IsZero() {
		c.createdAt = snapshot.CreatedAt
	}
	c.updatedAt = snapshot.UpdatedAt
	return c
}

// ID returns the session id.
func (c *Controller) ID() string {
	return c.id
}

// Mode returns the gating mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() domain.SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close ends the controller: a pending login is cancelled and later changes
// are no longer delivered to listeners.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelPendingLocked()
	c.closed = true
}

// Closed reports whether Close was called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Navigate moves the session to page. In guarded mode unknown identifiers
// fail with ErrUnknownView and restricted views redirect to login.
func (c *Controller) Navigate(ctx context.Context, page domain.View) (Transition, error) {
	c.mu.Lock()
	from := c.view.CurrentPage
	transition := Transition{From: from, Requested: page, To: page}
	if c.closed {
		c.mu.Unlock()
		transition.To = from
		return transition, ErrSessionNotFound
	}

	if c.mode == ModeGuarded {
		if !page.IsKnown() {
			c.mu.Unlock()
			transition.To = from
			return transition, ErrUnknownView
		}
		if reason := c.denyReasonLocked(page); reason != ReasonNone {
			transition.To = domain.ViewLogin
			transition.Rejected = true
			transition.Reason = reason
		}
	}

	cancelled := c.setViewLocked(transition.To)
	kind := ChangeNavigated
	if transition.Rejected {
		kind = ChangeRejected
	}
	changes := c.cancelledChangesLocked(cancelled)
	changes = append(changes, Change{Kind: kind, Snapshot: c.snapshotLocked(), Transition: &transition})
	c.mu.Unlock()

	c.notify(ctx, changes...)
	return transition, nil
}

// ToggleMobileMenu flips the mobile menu flag.
func (c *Controller) ToggleMobileMenu(ctx context.Context) domain.ViewState {
	c.mu.Lock()
	return c.setMenuUnlock(ctx, !c.view.MobileMenuOpen)
}

// SetMobileMenu opens or closes the mobile menu.
func (c *Controller) SetMobileMenu(ctx context.Context, open bool) domain.ViewState {
	c.mu.Lock()
	return c.setMenuUnlock(ctx, open)
}

func (c *Controller) setMenuUnlock(ctx context.Context, open bool) domain.ViewState {
	c.view.MobileMenuOpen = open
	c.touchLocked()
	view := c.view
	change := Change{Kind: ChangeMenu, Snapshot: c.snapshotLocked()}
	c.mu.Unlock()

	c.notify(ctx, change)
	return view
}

// Login authenticates creds and, on success, lands the session on the role's
// dashboard. The authenticator runs without the lock held; if the view changes
// or the session logs out meanwhile, the result is discarded and
// ErrLoginCancelled is returned.
func (c *Controller) Login(ctx context.Context, authenticator Authenticator, creds Credentials) (Transition, error) {
	attemptCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Transition{}, ErrSessionNotFound
	}
	superseded := c.cancelPendingLocked()
	attempt := &loginAttempt{cancel: cancel, startView: c.view.CurrentPage}
	c.pending = attempt
	c.touchLocked()
	changes := c.cancelledChangesLocked(superseded)
	changes = append(changes, Change{Kind: ChangeLoginStarted, Snapshot: c.snapshotLocked(), Email: creds.Email})
	c.mu.Unlock()
	c.notify(ctx, changes...)

	identity, authErr := authenticator.Authenticate(attemptCtx, creds)

	c.mu.Lock()
	if attempt.cancelled || c.pending != attempt {
		c.mu.Unlock()
		return Transition{}, ErrLoginCancelled
	}
	c.pending = nil

	if authErr == nil && identity == nil {
		authErr = ErrNoIdentity
	}
	if authErr != nil {
		c.touchLocked()
		change := Change{Kind: ChangeLoginFailed, Snapshot: c.snapshotLocked(), Email: creds.Email, Err: authErr}
		c.mu.Unlock()
		c.notify(ctx, change)
		return Transition{}, authErr
	}

	role := identity.Role
	c.session = domain.Session{
		Authenticated: true,
		Role:          &role,
		AccountID:     identity.AccountID,
		DisplayName:   identity.DisplayName,
	}
	transition := Transition{From: c.view.CurrentPage, Requested: domain.LandingView(role), To: domain.LandingView(role)}
	c.setViewLocked(transition.To)
	change := Change{Kind: ChangeLoggedIn, Snapshot: c.snapshotLocked(), Transition: &transition, Email: creds.Email}
	c.mu.Unlock()

	c.notify(ctx, change)
	return transition, nil
}

// Logout clears the session, cancels a pending login, and returns home.
func (c *Controller) Logout(ctx context.Context) Transition {
	c.mu.Lock()
	cancelled := c.cancelPendingLocked()
	previous := c.snapshotLocked()
	c.session = domain.Session{}
	transition := Transition{From: c.view.CurrentPage, Requested: domain.DefaultView, To: domain.DefaultView}
	c.setViewLocked(domain.DefaultView)
	changes := c.cancelledChangesLocked(cancelled)
	changes = append(changes, Change{Kind: ChangeLoggedOut, Snapshot: c.snapshotLocked(), Transition: &transition, Previous: &previous.Session})
	c.mu.Unlock()

	c.notify(ctx, changes...)
	return transition
}

// MarkNotificationsRead clears the notification badge.
func (c *Controller) MarkNotificationsRead(ctx context.Context) {
	c.mu.Lock()
	c.notifications = 0
	c.touchLocked()
	change := Change{Kind: ChangeNotifications, Snapshot: c.snapshotLocked()}
	c.mu.Unlock()
	c.notify(ctx, change)
}

// SetAlertChannel toggles an alert channel.
func (c *Controller) SetAlertChannel(ctx context.Context, channel domain.AlertChannel, enabled bool) (domain.AlertPreferences, error) {
	c.mu.Lock()
	switch channel {
	case domain.AlertChannelSMS:
		c.alerts.SMSEnabled = enabled
	case domain.AlertChannelEmail:
		c.alerts.EmailEnabled = enabled
	default:
		prefs := c.alerts
		c.mu.Unlock()
		return prefs, ErrUnknownAlertChannel
	}
	c.touchLocked()
	prefs := c.alerts
	change := Change{Kind: ChangeAlerts, Snapshot: c.snapshotLocked()}
	c.mu.Unlock()
	c.notify(ctx, change)
	return prefs, nil
}

// CanEnter reports whether the current session may enter page under the
// controller's mode.
func (c *Controller) CanEnter(page domain.View) bool {
	if c.mode == ModePermissive {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return page.IsKnown() && c.denyReasonLocked(page) == ReasonNone
}

func (c *Controller) denyReasonLocked(page domain.View) RejectReason {
	switch page.Access() {
	case domain.AccessAuthenticated:
		if !c.session.Authenticated {
			return ReasonUnauthenticated
		}
	case domain.AccessAdmin:
		if !c.session.Authenticated {
			return ReasonUnauthenticated
		}
		if !c.session.HasRole(domain.RoleAdmin) {
			return ReasonForbidden
		}
	}
	return ReasonNone
}

// setViewLocked applies a view change, closes the menu, and cancels a pending
// login when the view actually moved away from where the login started.
func (c *Controller) setViewLocked(page domain.View) *loginAttempt {
	c.view.CurrentPage = page
	c.view.MobileMenuOpen = false
	c.touchLocked()
	if c.pending != nil && c.pending.startView != page {
		return c.cancelPendingLocked()
	}
	return nil
}

func (c *Controller) cancelPendingLocked() *loginAttempt {
	attempt := c.pending
	if attempt == nil {
		return nil
	}
	attempt.cancelled = true
	attempt.cancel()
	c.pending = nil
	return attempt
}

func (c *Controller) cancelledChangesLocked(attempt *loginAttempt) []Change {
	if attempt == nil {
		return nil
	}
	return []Change{{Kind: ChangeLoginCancelled, Snapshot: c.snapshotLocked(), Err: ErrLoginCancelled}}
}

func (c *Controller) touchLocked() {
	c.updatedAt = c.now()
}

func (c *Controller) snapshotLocked() domain.SessionSnapshot {
	session := c.session
	if session.Role != nil {
		role := *session.Role
		session.Role = &role
	}
	return domain.SessionSnapshot{
		ID:            c.id,
		Session:       session,
		View:          c.view,
		Notifications: c.notifications,
		Alerts:        c.alerts,
		LoginPending:  c.pending != nil,
		CreatedAt:     c.createdAt,
		UpdatedAt:     c.updatedAt,
	}
}

func (c *Controller) notify(ctx context.Context, changes ...Change) {
	for _, change := range changes {
		if c.Closed() {
			return
		}
		change.source = c
		for _, l := range c.listeners {
			l(ctx, change)
		}
	}
}
