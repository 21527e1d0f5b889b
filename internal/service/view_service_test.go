package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/repository"
)

func newViewService() *ViewService {
	return NewViewService(ViewDependencies{
		ReportRepo:   repository.NewStaticReportRepository(nil),
		FacilityRepo: repository.NewStaticFacilityRepository(nil),
	})
}

func snapshotOn(view domain.View) domain.SessionSnapshot {
	return domain.SessionSnapshot{
		ID:            "s1",
		View:          domain.ViewState{CurrentPage: view},
		Notifications: 3,
		Alerts:        domain.AlertPreferences{SMSEnabled: true},
	}
}

func TestRenderEveryKnownView(t *testing.T) {
	svc := newViewService()
	for _, view := range domain.KnownViews() {
		t.Run(string(view), func(t *testing.T) {
			content, err := svc.Render(context.Background(), snapshotOn(view), ViewQuery{})
			require.NoError(t, err)
			assert.Equal(t, view, content.View)
			assert.False(t, content.Empty)
			assert.NotEmpty(t, content.Title)
			assert.NotNil(t, content.Body)
		})
	}
}

func TestRenderUnknownViewIsEmpty(t *testing.T) {
	content, err := newViewService().Render(context.Background(), snapshotOn("nonexistent"), ViewQuery{})
	require.NoError(t, err)
	assert.True(t, content.Empty)
	assert.Nil(t, content.Body)
}

func TestRenderMyReportsAppliesFilter(t *testing.T) {
	content, err := newViewService().Render(context.Background(), snapshotOn(domain.ViewMyReports), ViewQuery{Status: "resolved"})
	require.NoError(t, err)

	body, ok := content.Body.(reportListBody)
	require.True(t, ok)
	require.Len(t, body.Reports, 1)
	assert.Equal(t, domain.ReportStatusResolved, body.Reports[0].Status)
	assert.Equal(t, []string{"all", "pending", "in-progress", "resolved"}, body.Filters)
}

func TestRenderMapMarkers(t *testing.T) {
	svc := newViewService()

	content, err := svc.Render(context.Background(), snapshotOn(domain.ViewMap), ViewQuery{Markers: "facility"})
	require.NoError(t, err)
	body := content.Body.(mapBody)
	assert.Len(t, body.Points, 2)
	for _, p := range body.Points {
		assert.Equal(t, domain.MapPointFacility, p.Type)
	}
	assert.Len(t, body.Facilities, 3)
	assert.InDelta(t, 24.0, body.Facilities[0].AvailabilityPercent, 0.001)

	_, err = svc.Render(context.Background(), snapshotOn(domain.ViewMap), ViewQuery{Markers: "volcano"})
	assert.Error(t, err)
}

func TestRenderAlertsShowsPreferences(t *testing.T) {
	content, err := newViewService().Render(context.Background(), snapshotOn(domain.ViewAlerts), ViewQuery{})
	require.NoError(t, err)
	body := content.Body.(alertsBody)
	assert.True(t, body.Preferences.SMSEnabled)
	assert.False(t, body.Preferences.EmailEnabled)
	assert.Len(t, body.Recent, 3)
}

func TestRenderHelpFAQs(t *testing.T) {
	content, err := newViewService().Render(context.Background(), snapshotOn(domain.ViewHelp), ViewQuery{})
	require.NoError(t, err)
	assert.Len(t, content.Body.(helpBody).FAQs, 4)
}
