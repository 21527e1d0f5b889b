package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/healthwatch/internal/api/dto"
	"github.com/spec-kit/healthwatch/internal/service"
	apperrors "github.com/spec-kit/healthwatch/pkg/util"
)

// ReportsHandler exposes the read-only report catalog and the form stubs.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reportService}
}

// List handles GET /reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	reports, err := h.reports.List(c.UserContext(), service.ReportQuery{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Search: c.Query("q"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reports})
}

// Submit handles POST /reports.
func (h *ReportsHandler) Submit(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	var req dto.ReportSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, transition, err := h.reports.Submit(c.UserContext(), controller, service.ReportSubmission{
		Type:        req.Type,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Severity:    req.Severity,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"data": dto.ReportActionResponse{
			Report:     *report,
			Transition: dto.TransitionResponse{Transition: transition, Session: dto.NewSessionResponse(controller)},
		},
	})
}

// Review handles POST /reports/:id/status.
func (h *ReportsHandler) Review(c *fiber.Ctx) error {
	controller, err := sessionController(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid report id", map[string]any{"id": c.Params("id")})
	}
	var req dto.ReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, transition, err := h.reports.Review(c.UserContext(), controller, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.ReportActionResponse{
			Report:     *report,
			Transition: dto.TransitionResponse{Transition: transition, Session: dto.NewSessionResponse(controller)},
		},
	})
}
