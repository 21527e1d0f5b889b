package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthwatch/internal/domain"
	apperrors "github.com/spec-kit/healthwatch/pkg/util"
)

// RequireAuthenticated ensures the session has logged in.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		controller, ok := ControllerFromContext(c)
		if !ok || !controller.Snapshot().Session.Authenticated {
			return apperrors.NewUnauthorized("login required")
		}
		return c.Next()
	}
}

// RequireRole ensures the session is logged in with one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		controller, ok := ControllerFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("login required")
		}
		session := controller.Snapshot().Session
		if !session.Authenticated || session.Role == nil {
			return apperrors.NewUnauthorized("login required")
		}
		if _, exists := allowedSet[*session.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
