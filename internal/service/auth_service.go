package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/healthwatch/internal/auth"
	"github.com/spec-kit/healthwatch/internal/config"
	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/events"
	"github.com/spec-kit/healthwatch/internal/navigation"
	"github.com/spec-kit/healthwatch/internal/repository"
	apperrors "github.com/spec-kit/healthwatch/pkg/util"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRoleMismatch is returned when the selected role differs from the
	// account's role.
	ErrRoleMismatch = errors.New("role mismatch")
)

const minPasswordLength = 8

// AuthService coordinates sessions, sign-up and credential checks.
type AuthService struct {
	accounts   repository.AccountRepository
	registry   *navigation.Registry
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	latency    time.Duration
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	Registry    *navigation.Registry
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAuthService builds the service. Tokens live as long as session snapshots.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		accounts:   deps.AccountRepo,
		registry:   deps.Registry,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Navigation.SessionTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
		latency:    cfg.Auth.LoginLatency(),
		logger:     logger,
	}
}

// SignupInput is the sign-up form.
type SignupInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	Role            string
}

// SeedDemoAccounts registers the configured demo citizen and authority. Entries
// without a password are skipped and existing emails are left alone.
func (s *AuthService) SeedDemoAccounts(ctx context.Context, cfg config.AuthConfig) error {
	demos := []struct {
		name     string
		email    string
		password string
		role     domain.Role
	}{
		{name: "Demo Citizen", email: cfg.DemoUserEmail, password: cfg.DemoUserPassword, role: domain.RoleUser},
		{name: "Demo Authority", email: cfg.DemoAdminEmail, password: cfg.DemoAdminPassword, role: domain.RoleAdmin},
	}
	for _, demo := range demos {
		if strings.TrimSpace(demo.email) == "" || demo.password == "" {
			continue
		}
		hash, err := auth.HashPassword(demo.password, s.bcryptCost)
		if err != nil {
			return err
		}
		account := &domain.Account{Name: demo.name, Email: demo.email, PasswordHash: hash, Role: demo.role}
		if err := s.accounts.Create(ctx, account); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return err
		}
		s.logger.Info("demo account ready", zap.String("email", demo.email), zap.String("role", string(demo.role)))
	}
	return nil
}

// StartSession creates an anonymous session and a bearer token naming it.
func (s *AuthService) StartSession(ctx context.Context) (*navigation.Controller, string, time.Time, error) {
	controller, err := s.registry.Create(ctx)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(controller.ID())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return controller, token, exp, nil
}

// EndSession drops the session entirely.
func (s *AuthService) EndSession(ctx context.Context, sessionID string) error {
	return s.registry.Delete(ctx, sessionID)
}

// Authenticate implements navigation.Authenticator. It waits the configured
// round trip before checking the directory and gives up when ctx ends.
func (s *AuthService) Authenticate(ctx context.Context, creds navigation.Credentials) (*navigation.Identity, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	account, err := s.accounts.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.ComparePassword(account.PasswordHash, creds.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if creds.Role != "" && creds.Role != account.Role {
		return nil, ErrRoleMismatch
	}

	return &navigation.Identity{
		AccountID:   account.ID,
		DisplayName: account.Name,
		Role:        account.Role,
	}, nil
}

// Login runs a login for the session through this service's directory.
func (s *AuthService) Login(ctx context.Context, controller *navigation.Controller, email, password, role string) (navigation.Transition, error) {
	creds := navigation.Credentials{Email: strings.TrimSpace(email), Password: password}
	if strings.TrimSpace(role) != "" {
		parsed, ok := domain.ParseRole(role)
		if !ok {
			return navigation.Transition{}, apperrors.NewValidationError("invalid role", map[string]any{"role": role})
		}
		creds.Role = parsed
	}
	if creds.Email == "" || creds.Password == "" {
		return navigation.Transition{}, apperrors.NewValidationError("email and password are required", nil)
	}
	return controller.Login(ctx, s, creds)
}

// Register validates the sign-up form, creates the account and moves the
// session to the login view.
func (s *AuthService) Register(ctx context.Context, controller *navigation.Controller, input SignupInput) (*domain.Account, navigation.Transition, error) {
	role, details := validateSignup(input)
	if len(details) > 0 {
		return nil, navigation.Transition{}, apperrors.NewValidationError("invalid sign-up form", details)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, navigation.Transition{}, err
	}
	account := &domain.Account{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, navigation.Transition{}, apperrors.NewConflict("email already registered", map[string]any{"email": account.Email})
		}
		return nil, navigation.Transition{}, err
	}

	snapshot := controller.Snapshot()
	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountCreated,
		SessionID: snapshot.ID,
		Actor:     events.Actor{Role: &account.Role, AccountID: account.ID},
		Timestamp: time.Now().UTC(),
		Payload:   events.AccountCreatedPayload{AccountID: account.ID, Email: account.Email, Role: account.Role},
		Alerts:    &snapshot.Alerts,
	})

	transition, err := controller.Navigate(ctx, domain.ViewLogin)
	if err != nil {
		return nil, navigation.Transition{}, err
	}
	return account, transition, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateSignup(input SignupInput) (domain.Role, map[string]any) {
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		details["email"] = "must be a valid email address"
	}
	if strings.TrimSpace(input.Phone) == "" {
		details["phone"] = "required"
	}
	if len(input.Password) < minPasswordLength {
		details["password"] = "must be at least 8 characters"
	}
	if input.Password != input.ConfirmPassword {
		details["confirm_password"] = "does not match password"
	}
	role := domain.RoleUser
	if strings.TrimSpace(input.Role) != "" {
		parsed, ok := domain.ParseRole(input.Role)
		if !ok {
			details["role"] = "must be user or admin"
		}
		role = parsed
	}
	return role, details
}
