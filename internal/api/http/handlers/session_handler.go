package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthwatch/internal/api/dto"
	"github.com/spec-kit/healthwatch/internal/auth"
	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/navigation"
	"github.com/spec-kit/healthwatch/internal/service"
	apperrors "github.com/spec-kit/healthwatch/pkg/util"
)

// SessionHandler exposes the view state controller of the caller's session.
type SessionHandler struct {
	auth    *service.AuthService
	views   *service.ViewService
	history *service.HistoryService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(authService *service.AuthService, viewService *service.ViewService, historyService *service.HistoryService) *SessionHandler {
	return &SessionHandler{auth: authService, views: viewService, history: historyService}
}

// Create handles POST /sessions.
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	controller, token, exp, err := h.auth.StartSession(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
			"session": dto.NewSessionResponse(controller),
		},
	})
}

// Get handles GET /session.
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(controller)})
}

// Delete handles DELETE /session.
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	if err := h.auth.EndSession(c.UserContext(), controller.ID()); err != nil {
		return err
	}
	if err := h.history.Forget(c.UserContext(), controller.ID()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// History handles GET /session/history.
func (h *SessionHandler) History(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return apperrors.NewValidationError("limit must not be negative", nil)
	}
	entries, err := h.history.List(c.UserContext(), controller.ID(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entries})
}

// Navigate handles POST /session/navigate.
func (h *SessionHandler) Navigate(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	page := strings.TrimSpace(req.Page)
	if page == "" {
		return apperrors.NewValidationError("page is required", nil)
	}

	transition, err := controller.Navigate(c.UserContext(), domain.View(page))
	if err != nil {
		return err
	}
	return transitionJSON(c, controller, transition)
}

// Menu handles POST /session/menu.
func (h *SessionHandler) Menu(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	var req dto.MenuRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	if req.Open == nil {
		controller.ToggleMobileMenu(c.UserContext())
	} else {
		controller.SetMobileMenu(c.UserContext(), *req.Open)
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(controller)})
}

// Login handles POST /session/login. The call blocks for the simulated round
// trip and fails with a conflict when the attempt is cancelled meanwhile.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	transition, err := h.auth.Login(c.UserContext(), controller, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}
	return transitionJSON(c, controller, transition)
}

// Logout handles POST /session/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	return transitionJSON(c, controller, controller.Logout(c.UserContext()))
}

// Signup handles POST /session/signup.
func (h *SessionHandler) Signup(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, transition, err := h.auth.Register(c.UserContext(), controller, service.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"account": dto.AccountResponse{
				ID:    account.ID,
				Name:  account.Name,
				Email: account.Email,
				Role:  account.Role,
			},
			"navigation": dto.TransitionResponse{Transition: transition, Session: dto.NewSessionResponse(controller)},
		},
	})
}

// MarkNotificationsRead handles POST /session/notifications/read.
func (h *SessionHandler) MarkNotificationsRead(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	controller.MarkNotificationsRead(c.UserContext())
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(controller)})
}

// SetAlertChannel handles PUT /session/alerts.
func (h *SessionHandler) SetAlertChannel(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	var req dto.AlertChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Enabled == nil {
		return apperrors.NewValidationError("enabled is required", nil)
	}

	channel := domain.AlertChannel(strings.ToLower(strings.TrimSpace(req.Channel)))
	prefs, err := controller.SetAlertChannel(c.UserContext(), channel, *req.Enabled)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": prefs})
}

// View handles GET /session/view.
func (h *SessionHandler) View(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	content, err := h.views.Render(c.UserContext(), controller.Snapshot(), service.ViewQuery{
		Status:  c.Query("status"),
		Type:    c.Query("type"),
		Search:  c.Query("q"),
		Markers: c.Query("markers"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": content})
}

func sessionController(c *fiber.Ctx) (*navigation.Controller, error) {
	controller, ok := auth.ControllerFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("session required")
	}
	return controller, nil
}

func transitionJSON(c *fiber.Ctx, controller *navigation.Controller, transition navigation.Transition) error {
	return c.JSON(fiber.Map{
		"data": dto.TransitionResponse{Transition: transition, Session: dto.NewSessionResponse(controller)},
	})
}
