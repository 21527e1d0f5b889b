package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/healthwatch/internal/navigation"
	"github.com/spec-kit/healthwatch/internal/observability"
	"github.com/spec-kit/healthwatch/internal/service"
	apperrors "github.com/spec-kit/healthwatch/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as logging, error
// handling and request timeouts. The request logger wraps the error handler so
// it sees the rendered status.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := toDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				response := fiber.Map{"error": fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}}
				if len(domainErr.Details) > 0 {
					response["error"].(fiber.Map)["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}

// toDomainError maps the controller and auth sentinels onto API errors before
// falling back to the generic mapping.
func toDomainError(err error) *apperrors.DomainError {
	var mapped error
	switch {
	case errors.Is(err, navigation.ErrUnknownView):
		mapped = apperrors.NewValidationError("unknown view", nil)
	case errors.Is(err, navigation.ErrUnknownAlertChannel):
		mapped = apperrors.NewValidationError("unknown alert channel", nil)
	case errors.Is(err, navigation.ErrLoginCancelled):
		mapped = apperrors.NewConflict("login cancelled", nil)
	case errors.Is(err, navigation.ErrSessionNotFound):
		mapped = apperrors.NewUnauthorized("session expired")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, navigation.ErrNoIdentity):
		mapped = apperrors.NewUnauthorized("invalid credentials")
	case errors.Is(err, service.ErrRoleMismatch):
		mapped = apperrors.NewForbidden("role mismatch")
	default:
		return apperrors.ToDomainError(err)
	}
	return apperrors.ToDomainError(apperrors.Wrap(mapped, err))
}
