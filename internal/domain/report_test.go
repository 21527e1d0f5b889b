package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleReports() []Report {
	return []Report{
		{ID: 1, Type: ReportTypeHealth, Title: "Fever Outbreak", Location: "Ward 5", Status: ReportStatusInProgress},
		{ID: 2, Type: ReportTypeSanitation, Title: "Blocked Drainage", Location: "Main Street", Status: ReportStatusPending},
		{ID: 3, Type: ReportTypeHealth, Title: "Food Poisoning", Location: "Market Area", Status: ReportStatusResolved},
		{ID: 4, Type: ReportTypeSanitation, Title: "Garbage Overflow", Location: "Block B", Status: ReportStatusInProgress},
	}
}

func ids(reports []Report) []int {
	out := make([]int, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterReportsByStatus(t *testing.T) {
	reports := sampleReports()

	resolved := FilterReports(reports, ReportFilter{Status: "resolved"})
	for _, r := range resolved {
		assert.Equal(t, ReportStatusResolved, r.Status)
	}
	assert.Equal(t, []int{3}, ids(resolved))

	assert.Equal(t, []int{1, 4}, ids(FilterReports(reports, ReportFilter{Status: "in-progress"})))
	assert.Equal(t, []int{2}, ids(FilterReports(reports, ReportFilter{Status: "pending"})))
	assert.Equal(t, []int{1, 2, 3, 4}, ids(FilterReports(reports, ReportFilter{Status: StatusFilterAll})))
	assert.Equal(t, []int{1, 2, 3, 4}, ids(FilterReports(reports, ReportFilter{})))
	assert.Empty(t, FilterReports(reports, ReportFilter{Status: "closed"}))
}

func TestFilterReportsByTypeAndSearch(t *testing.T) {
	reports := sampleReports()
	sanitation := ReportTypeSanitation

	assert.Equal(t, []int{2, 4}, ids(FilterReports(reports, ReportFilter{Type: &sanitation})))
	assert.Equal(t, []int{3}, ids(FilterReports(reports, ReportFilter{Search: "market"})))
	assert.Equal(t, []int{1}, ids(FilterReports(reports, ReportFilter{Search: "  FEVER "})))
	assert.Equal(t, []int{4}, ids(FilterReports(reports, ReportFilter{Type: &sanitation, Status: "in-progress"})))
}

func TestReportStatusSlugAndParse(t *testing.T) {
	assert.Equal(t, "in-progress", ReportStatusInProgress.Slug())
	assert.Equal(t, "pending", ReportStatusPending.Slug())

	for _, raw := range []string{"In Progress", "in-progress", " IN PROGRESS "} {
		status, ok := ParseReportStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, ReportStatusInProgress, status)
	}
	_, ok := ParseReportStatus("closed")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(ReportStatusPending, ReportStatusInProgress))
	assert.True(t, CanTransition(ReportStatusInProgress, ReportStatusResolved))
	assert.True(t, CanTransition(ReportStatusResolved, ReportStatusInProgress))
	assert.False(t, CanTransition(ReportStatusResolved, ReportStatusPending))
	assert.False(t, CanTransition(ReportStatusPending, ReportStatusPending))
}
