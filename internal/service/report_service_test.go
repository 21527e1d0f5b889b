package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/events"
	"github.com/spec-kit/healthwatch/internal/navigation"
	apperrors "github.com/spec-kit/healthwatch/pkg/util"
)

func loggedIn(t *testing.T, f fixture, email, password string) *navigation.Controller {
	t.Helper()
	controller, _, _, err := f.auth.StartSession(context.Background())
	require.NoError(t, err)
	_, err = f.auth.Login(context.Background(), controller, email, password, "")
	require.NoError(t, err)
	return controller
}

func TestReportListFilters(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   ReportQuery
		wantIDs []int
	}{
		{name: "all", query: ReportQuery{}, wantIDs: []int{1, 2, 3, 4, 5}},
		{name: "resolved slug", query: ReportQuery{Status: "resolved"}, wantIDs: []int{3}},
		{name: "in progress display value", query: ReportQuery{Status: "In Progress"}, wantIDs: []int{1, 4}},
		{name: "sanitation", query: ReportQuery{Type: "sanitation"}, wantIDs: []int{2, 4}},
		{name: "search location", query: ReportQuery{Search: "ward"}, wantIDs: []int{1}},
		{name: "combined", query: ReportQuery{Status: "pending", Type: "health"}, wantIDs: []int{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports, err := f.reports.List(ctx, tt.query)
			require.NoError(t, err)
			ids := make([]int, 0, len(reports))
			for _, r := range reports {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	_, err := f.reports.List(ctx, ReportQuery{Status: "closed"})
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestSubmitNavigatesToMyReports(t *testing.T) {
	f := newFixture(t, 0)
	controller := loggedIn(t, f, "citizen@example.org", "citizen-pass")

	report, transition, err := f.reports.Submit(context.Background(), controller, ReportSubmission{
		Type:     "health",
		Category: "Fever/Flu",
		Title:    "Fever cluster",
		Location: "Ward 2",
		Severity: "high",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	assert.Equal(t, domain.ReportPriorityHigh, report.Priority)
	assert.Equal(t, domain.ViewMyReports, transition.To)
	assert.Contains(t, f.types(), events.EventReportSubmitted)

	all, err := f.reports.List(context.Background(), ReportQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t, 0)
	controller := loggedIn(t, f, "citizen@example.org", "citizen-pass")

	tests := []struct {
		name  string
		input ReportSubmission
		field string
	}{
		{name: "type", input: ReportSubmission{Type: "noise", Title: "t", Location: "l"}, field: "type"},
		{name: "category from other type", input: ReportSubmission{Type: "sanitation", Category: "Fever/Flu", Title: "t", Location: "l"}, field: "category"},
		{name: "title", input: ReportSubmission{Type: "health", Category: "Other", Location: "l"}, field: "title"},
		{name: "location", input: ReportSubmission{Type: "health", Category: "Other", Title: "t"}, field: "location"},
		{name: "severity", input: ReportSubmission{Type: "health", Category: "Other", Title: "t", Location: "l", Severity: "urgent"}, field: "severity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.reports.Submit(context.Background(), controller, tt.input)
			de := apperrors.ToDomainError(err)
			require.NotNil(t, de)
			assert.Equal(t, "VALIDATION_FAILED", de.Code)
			assert.Contains(t, de.Details, tt.field)
		})
	}
	assert.Equal(t, domain.ViewUserDashboard, controller.Snapshot().View.CurrentPage)
}

func TestReview(t *testing.T) {
	f := newFixture(t, 0)
	admin := loggedIn(t, f, "authority@example.org", "authority-pass")

	reviewed, transition, err := f.reports.Review(context.Background(), admin, 2, "in-progress")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusInProgress, reviewed.Status)
	assert.Equal(t, domain.ViewIncidentMonitoring, transition.To)
	assert.Contains(t, f.types(), events.EventReportReviewed)

	original, err := f.reports.List(context.Background(), ReportQuery{Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, original, 2)
}

func TestReviewRejections(t *testing.T) {
	f := newFixture(t, 0)
	admin := loggedIn(t, f, "authority@example.org", "authority-pass")
	citizen := loggedIn(t, f, "citizen@example.org", "citizen-pass")

	tests := []struct {
		name       string
		controller *navigation.Controller
		id         int
		status     string
		wantCode   string
	}{
		{name: "citizen", controller: citizen, id: 2, status: "resolved", wantCode: "FORBIDDEN"},
		{name: "unknown report", controller: admin, id: 99, status: "resolved", wantCode: "NOT_FOUND"},
		{name: "bad status", controller: admin, id: 2, status: "archived", wantCode: "VALIDATION_FAILED"},
		{name: "resolved to pending", controller: admin, id: 3, status: "pending", wantCode: "CONFLICT"},
		{name: "same status", controller: admin, id: 2, status: "Pending", wantCode: "CONFLICT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.reports.Review(context.Background(), tt.controller, tt.id, tt.status)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.ToDomainError(err).Code)
		})
	}
}
