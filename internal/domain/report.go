package domain

import "strings"

// ReportType separates health and sanitation incidents.
type ReportType string

const (
	ReportTypeHealth     ReportType = "Health"
	ReportTypeSanitation ReportType = "Sanitation"
)

// ParseReportType accepts the type case-insensitively.
func ParseReportType(raw string) (ReportType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "health":
		return ReportTypeHealth, true
	case "sanitation":
		return ReportTypeSanitation, true
	default:
		return "", false
	}
}

// ReportStatus enumerates incident lifecycle states.
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "Pending"
	ReportStatusInProgress ReportStatus = "In Progress"
	ReportStatusResolved   ReportStatus = "Resolved"
)

// Slug returns the filter key of a status, e.g. "in-progress".
func (s ReportStatus) Slug() string {
	return strings.Replace(strings.ToLower(string(s)), " ", "-", 1)
}

// ParseReportStatus accepts either the display value or the slug.
func ParseReportStatus(raw string) (ReportStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, status := range []ReportStatus{ReportStatusPending, ReportStatusInProgress, ReportStatusResolved} {
		if normalized == strings.ToLower(string(status)) || normalized == status.Slug() {
			return status, true
		}
	}
	return "", false
}

// ReportPriority enumerates urgency.
type ReportPriority string

const (
	ReportPriorityLow    ReportPriority = "Low"
	ReportPriorityMedium ReportPriority = "Medium"
	ReportPriorityHigh   ReportPriority = "High"
)

// Report is a read-only incident record from the sample catalog.
type Report struct {
	ID       int            `json:"id"`
	Type     ReportType     `json:"type"`
	Title    string         `json:"title"`
	Location string         `json:"location"`
	Status   ReportStatus   `json:"status"`
	Date     string         `json:"date"`
	Priority ReportPriority `json:"priority"`
}

// StatusFilterAll disables status filtering.
const StatusFilterAll = "all"

// ReportFilter narrows a report listing.
type ReportFilter struct {
	Status string
	Type   *ReportType
	Search string
}

// Matches reports whether r passes every populated filter field.
func (f ReportFilter) Matches(r Report) bool {
	if f.Status != "" && f.Status != StatusFilterAll && r.Status.Slug() != f.Status {
		return false
	}
	if f.Type != nil && r.Type != *f.Type {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(r.Title), term) && !strings.Contains(strings.ToLower(r.Location), term) {
			return false
		}
	}
	return true
}

// FilterReports returns the reports matching f, preserving order.
func FilterReports(reports []Report, f ReportFilter) []Report {
	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportStatusPending:    {ReportStatusInProgress, ReportStatusResolved},
	ReportStatusInProgress: {ReportStatusResolved, ReportStatusPending},
	ReportStatusResolved:   {ReportStatusInProgress},
}

// CanTransition reports whether a report may move from current to next.
func CanTransition(current, next ReportStatus) bool {
	for _, candidate := range reportTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
