package service

import (
	"context"
	"strings"

	"github.com/spec-kit/healthwatch/internal/domain"
	"github.com/spec-kit/healthwatch/internal/repository"
	apperrors "github.com/spec-kit/healthwatch/pkg/util"
)

// ViewQuery carries the per-view filters a client may pass along.
type ViewQuery struct {
	Status string
	Type   string
	Search string
	// Markers filters map points: all, health, sanitation or facility.
	Markers string
}

// ViewContent is the rendered body of one view.
type ViewContent struct {
	View  domain.View `json:"view"`
	Title string      `json:"title,omitempty"`
	Empty bool        `json:"empty"`
	Body  any         `json:"body,omitempty"`
}

// ViewService renders the catalog content of each view.
type ViewService struct {
	reports    repository.ReportRepository
	facilities repository.FacilityRepository
}

// ViewDependencies bundles requirements for the view service.
type ViewDependencies struct {
	ReportRepo   repository.ReportRepository
	FacilityRepo repository.FacilityRepository
}

// NewViewService constructs the service.
func NewViewService(deps ViewDependencies) *ViewService {
	return &ViewService{reports: deps.ReportRepo, facilities: deps.FacilityRepo}
}

type homeBody struct {
	Stats    []domain.StatCard `json:"stats"`
	Features []Feature         `json:"features"`
}

type loginBody struct {
	Roles []domain.Role `json:"roles"`
}

type signupBody struct {
	Roles  []domain.Role `json:"roles"`
	Fields []string      `json:"fields"`
}

type citizenDashboardBody struct {
	Greeting      string          `json:"greeting"`
	Notifications int             `json:"notifications"`
	QuickActions  []QuickAction   `json:"quick_actions"`
	RecentReports []domain.Report `json:"recent_reports"`
}

type submitReportBody struct {
	Types      []domain.ReportType            `json:"types"`
	Categories map[domain.ReportType][]string `json:"categories"`
	Severities []string                       `json:"severities"`
}

type reportListBody struct {
	Filters []string        `json:"status_filters"`
	Reports []domain.Report `json:"reports"`
}

type mapBody struct {
	Markers    string            `json:"markers"`
	Points     []domain.MapPoint `json:"points"`
	Facilities []facilityView    `json:"facilities"`
}

type adminDashboardBody struct {
	Stats          []domain.StatCard           `json:"stats"`
	QuickLinks     []QuickAction               `json:"quick_links"`
	IncidentTrend  []domain.IncidentTrendPoint `json:"incident_trend"`
	RecentActivity []domain.Report             `json:"recent_activity"`
}

type analyticsBody struct {
	DiseaseDistribution []domain.DiseaseShare       `json:"disease_distribution"`
	IncidentTrend       []domain.IncidentTrendPoint `json:"incident_trend"`
}

type facilityView struct {
	domain.Facility
	AvailabilityPercent float64 `json:"availability_percent"`
}

type resourcesBody struct {
	Facilities []facilityView       `json:"facilities"`
	Sanitation []SanitationResource `json:"sanitation"`
}

type alertsBody struct {
	Preferences domain.AlertPreferences `json:"preferences"`
	Recent      []SentAlert             `json:"recent"`
}

type aboutBody struct {
	Mission string        `json:"mission"`
	Vision  string        `json:"vision"`
	Impact  []ImpactStory `json:"impact"`
}

type helpBody struct {
	FAQs []FAQ `json:"faqs"`
}

var statusFilters = []string{
	domain.StatusFilterAll,
	domain.ReportStatusPending.Slug(),
	domain.ReportStatusInProgress.Slug(),
	domain.ReportStatusResolved.Slug(),
}

// Render builds the content of the snapshot's current view. An identifier
// outside the known set renders an empty body.
func (s *ViewService) Render(ctx context.Context, snapshot domain.SessionSnapshot, query ViewQuery) (*ViewContent, error) {
	view := snapshot.View.CurrentPage
	content := &ViewContent{View: view}

	switch view {
	case domain.ViewHome:
		content.Title = "HealthWatch"
		content.Body = homeBody{Stats: homeStats(), Features: homeFeatures()}
	case domain.ViewLogin:
		content.Title = "Welcome Back"
		content.Body = loginBody{Roles: []domain.Role{domain.RoleUser, domain.RoleAdmin}}
	case domain.ViewSignup:
		content.Title = "Create Account"
		content.Body = signupBody{
			Roles:  []domain.Role{domain.RoleUser, domain.RoleAdmin},
			Fields: []string{"name", "email", "phone", "password", "confirm_password", "role"},
		}
	case domain.ViewUserDashboard:
		recent, err := s.reports.List(ctx, domain.ReportFilter{})
		if err != nil {
			return nil, err
		}
		content.Title = "Dashboard"
		content.Body = citizenDashboardBody{
			Greeting:      greeting(snapshot.Session),
			Notifications: snapshot.Notifications,
			QuickActions:  citizenQuickActions(),
			RecentReports: headReports(recent, 3),
		}
	case domain.ViewSubmitReport:
		content.Title = "Submit Incident Report"
		content.Body = submitReportBody{
			Types: []domain.ReportType{domain.ReportTypeHealth, domain.ReportTypeSanitation},
			Categories: map[domain.ReportType][]string{
				domain.ReportTypeHealth:     ReportCategories(domain.ReportTypeHealth),
				domain.ReportTypeSanitation: ReportCategories(domain.ReportTypeSanitation),
			},
			Severities: []string{"low", "medium", "high"},
		}
	case domain.ViewMyReports, domain.ViewIncidentMonitoring:
		filter, err := parseReportQuery(ReportQuery{Status: query.Status, Type: query.Type, Search: query.Search})
		if err != nil {
			return nil, err
		}
		reports, err := s.reports.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		content.Title = "My Reports"
		if view == domain.ViewIncidentMonitoring {
			content.Title = "Incident Monitoring"
		}
		content.Body = reportListBody{Filters: statusFilters, Reports: reports}
	case domain.ViewMap:
		markers, points, err := filterMapPoints(query.Markers)
		if err != nil {
			return nil, err
		}
		facilities, err := s.facilityViews(ctx)
		if err != nil {
			return nil, err
		}
		content.Title = "Interactive Map"
		content.Body = mapBody{Markers: markers, Points: points, Facilities: facilities}
	case domain.ViewAdminDashboard:
		recent, err := s.reports.List(ctx, domain.ReportFilter{})
		if err != nil {
			return nil, err
		}
		content.Title = "Admin Dashboard"
		content.Body = adminDashboardBody{
			Stats:          adminStats(),
			QuickLinks:     adminQuickLinks(),
			IncidentTrend:  repository.SampleIncidentTrend(),
			RecentActivity: headReports(recent, 4),
		}
	case domain.ViewAnalytics:
		content.Title = "Analytics & Trends"
		content.Body = analyticsBody{
			DiseaseDistribution: repository.SampleDiseaseShares(),
			IncidentTrend:       repository.SampleIncidentTrend(),
		}
	case domain.ViewResources:
		facilities, err := s.facilityViews(ctx)
		if err != nil {
			return nil, err
		}
		content.Title = "Resource Management"
		content.Body = resourcesBody{Facilities: facilities, Sanitation: sanitationResources()}
	case domain.ViewAlerts:
		content.Title = "Alerts & Notifications"
		content.Body = alertsBody{Preferences: snapshot.Alerts, Recent: recentAlerts()}
	case domain.ViewAbout:
		content.Title = "About HealthWatch"
		content.Body = aboutBody{Mission: aboutMission, Vision: aboutVision, Impact: impactStories()}
	case domain.ViewHelp:
		content.Title = "Help & Support"
		content.Body = helpBody{FAQs: helpFAQs()}
	default:
		content.Empty = true
	}
	return content, nil
}

func (s *ViewService) facilityViews(ctx context.Context) ([]facilityView, error) {
	facilities, err := s.facilities.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]facilityView, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, facilityView{Facility: f, AvailabilityPercent: f.AvailabilityPercent()})
	}
	return out, nil
}

func filterMapPoints(raw string) (string, []domain.MapPoint, error) {
	markers := strings.ToLower(strings.TrimSpace(raw))
	if markers == "" {
		markers = domain.StatusFilterAll
	}
	points := repository.SampleMapPoints()
	if markers == domain.StatusFilterAll {
		return markers, points, nil
	}
	switch domain.MapPointType(markers) {
	case domain.MapPointHealth, domain.MapPointSanitation, domain.MapPointFacility:
	default:
		return "", nil, apperrors.NewValidationError("invalid marker filter", map[string]any{"markers": raw})
	}
	out := make([]domain.MapPoint, 0, len(points))
	for _, p := range points {
		if p.Type == domain.MapPointType(markers) {
			out = append(out, p)
		}
	}
	return markers, out, nil
}

func headReports(reports []domain.Report, n int) []domain.Report {
	if len(reports) > n {
		return reports[:n]
	}
	return reports
}

func greeting(session domain.Session) string {
	if session.DisplayName == "" {
		return "Welcome back!"
	}
	return "Welcome back, " + session.DisplayName + "!"
}
