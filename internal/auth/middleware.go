package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthwatch/internal/navigation"
	apperrors "github.com/spec-kit/healthwatch/pkg/util"
)

const controllerKey = "session_controller"

// SessionMiddleware validates bearer tokens and loads the session controller.
type SessionMiddleware struct {
	tokens   *TokenManager
	registry *navigation.Registry
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, registry *navigation.Registry) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, registry: registry}
}

// Handle resolves the caller's session for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	controller, err := m.registry.Get(c.UserContext(), claims.SessionID)
	if err != nil {
		if errors.Is(err, navigation.ErrSessionNotFound) {
			return apperrors.NewUnauthorized("session expired")
		}
		return apperrors.MapError(err)
	}

	c.Locals(controllerKey, controller)
	return c.Next()
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// ControllerFromContext retrieves the session controller loaded by Handle.
func ControllerFromContext(c *fiber.Ctx) (*navigation.Controller, bool) {
	val := c.Locals(controllerKey)
	if val == nil {
		return nil, false
	}
	controller, ok := val.(*navigation.Controller)
	return controller, ok
}
