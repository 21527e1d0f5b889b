package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/events"
	"github.com/spec-kit/healthwatch/internal/navigation"
	"github.com/spec-kit/healthwatch/internal/repository"
	apperrors "github.com/spec-kit/healthwatch/pkg/util"
)

var reportCategories = map[domain.ReportType][]string{
	domain.ReportTypeHealth:     {"Fever/Flu", "Food Poisoning", "Skin Infection", "Water-borne Disease", "Other"},
	domain.ReportTypeSanitation: {"Blocked Drainage", "Garbage Overflow", "Water Contamination", "Open Defecation", "Other"},
}

// ReportCategories returns the selectable categories for a report type.
func ReportCategories(t domain.ReportType) []string {
	categories := reportCategories[t]
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

var severities = map[string]domain.ReportPriority{
	"low":    domain.ReportPriorityLow,
	"medium": domain.ReportPriorityMedium,
	"high":   domain.ReportPriorityHigh,
}

// ReportService serves the read-only catalog and validates the submit and
// review forms. Nothing it accepts is stored.
type ReportService struct {
	reports    repository.ReportRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// ReportDependencies bundles requirements for the report service.
type ReportDependencies struct {
	ReportRepo repository.ReportRepository
	Dispatcher events.Dispatcher
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	return &ReportService{
		reports:    deps.ReportRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// ReportQuery is the raw listing filter as received from a client.
type ReportQuery struct {
	Status string
	Type   string
	Search string
}

// ReportSubmission is the submit-report form.
type ReportSubmission struct {
	Type        string
	Category    string
	Title       string
	Description string
	Location    string
	Severity    string
}

// List returns the reports matching query.
func (s *ReportService) List(ctx context.Context, query ReportQuery) ([]domain.Report, error) {
	filter, err := parseReportQuery(query)
	if err != nil {
		return nil, err
	}
	return s.reports.List(ctx, filter)
}

// Submit validates a report and moves the session to its report list. The
// returned report is a preview and is not added to the catalog.
func (s *ReportService) Submit(ctx context.Context, controller *navigation.Controller, input ReportSubmission) (*domain.Report, navigation.Transition, error) {
	reportType, priority, details := validateSubmission(input)
	if len(details) > 0 {
		return nil, navigation.Transition{}, apperrors.NewValidationError("invalid report", details)
	}

	report := &domain.Report{
		Type:     reportType,
		Title:    strings.TrimSpace(input.Title),
		Location: strings.TrimSpace(input.Location),
		Status:   domain.ReportStatusPending,
		Date:     s.now().Format("2006-01-02"),
		Priority: priority,
	}

	snapshot := controller.Snapshot()
	s.publish(ctx, snapshot, events.EventReportSubmitted, events.ReportSubmittedPayload{
		Type:     report.Type,
		Category: strings.TrimSpace(input.Category),
		Title:    report.Title,
		Location: report.Location,
		Severity: string(priority),
	})

	transition, err := controller.Navigate(ctx, domain.ViewMyReports)
	if err != nil {
		return nil, navigation.Transition{}, err
	}
	return report, transition, nil
}

// Review validates a status change on a catalog report and moves the session
// back to incident monitoring. Only authorities may review.
func (s *ReportService) Review(ctx context.Context, controller *navigation.Controller, id int, rawStatus string) (*domain.Report, navigation.Transition, error) {
	snapshot := controller.Snapshot()
	if !snapshot.Session.HasRole(domain.RoleAdmin) {
		return nil, navigation.Transition{}, apperrors.NewForbidden("authority role required")
	}

	next, ok := domain.ParseReportStatus(rawStatus)
	if !ok {
		return nil, navigation.Transition{}, apperrors.NewValidationError("invalid status", map[string]any{"status": rawStatus})
	}

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, navigation.Transition{}, apperrors.NewNotFound("report", map[string]any{"id": id})
		}
		return nil, navigation.Transition{}, err
	}

	if !domain.CanTransition(report.Status, next) {
		return nil, navigation.Transition{}, apperrors.NewConflict("status transition not allowed", map[string]any{
			"from": report.Status,
			"to":   next,
		})
	}

	previous := report.Status
	reviewed := *report
	reviewed.Status = next

	s.publish(ctx, snapshot, events.EventReportReviewed, events.ReportReviewedPayload{
		ReportID:  report.ID,
		OldStatus: previous,
		NewStatus: next,
	})

	transition, err := controller.Navigate(ctx, domain.ViewIncidentMonitoring)
	if err != nil {
		return nil, navigation.Transition{}, err
	}
	return &reviewed, transition, nil
}

func (s *ReportService) publish(ctx context.Context, snapshot domain.SessionSnapshot, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	alerts := snapshot.Alerts
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: snapshot.ID,
		Actor:     actorOf(snapshot.Session),
		Timestamp: s.now().UTC(),
		Payload:   payload,
		Alerts:    &alerts,
	})
}

func parseReportQuery(query ReportQuery) (domain.ReportFilter, error) {
	filter := domain.ReportFilter{Search: query.Search}

	status := strings.ToLower(strings.TrimSpace(query.Status))
	if status != "" && status != domain.StatusFilterAll {
		parsed, ok := domain.ParseReportStatus(status)
		if !ok {
			return filter, apperrors.NewValidationError("invalid status filter", map[string]any{"status": query.Status})
		}
		status = parsed.Slug()
	}
	filter.Status = status

	if raw := strings.TrimSpace(query.Type); raw != "" && !strings.EqualFold(raw, domain.StatusFilterAll) {
		reportType, ok := domain.ParseReportType(raw)
		if !ok {
			return filter, apperrors.NewValidationError("invalid type filter", map[string]any{"type": query.Type})
		}
		filter.Type = &reportType
	}
	return filter, nil
}

func validateSubmission(input ReportSubmission) (domain.ReportType, domain.ReportPriority, map[string]any) {
	details := map[string]any{}

	reportType, ok := domain.ParseReportType(input.Type)
	if !ok {
		details["type"] = "must be health or sanitation"
	} else if !containsString(reportCategories[reportType], strings.TrimSpace(input.Category)) {
		details["category"] = "must be one of " + strings.Join(reportCategories[reportType], ", ")
	}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(input.Location) == "" {
		details["location"] = "required"
	}

	severity := strings.ToLower(strings.TrimSpace(input.Severity))
	if severity == "" {
		severity = "medium"
	}
	priority, ok := severities[severity]
	if !ok {
		details["severity"] = "must be low, medium or high"
	}
	return reportType, priority, details
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
