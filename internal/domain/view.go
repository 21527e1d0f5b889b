package domain

// View identifies one mutually exclusive screen of the portal.
type View string

const (
	ViewHome               View = "home"
	ViewLogin              View = "login"
	ViewSignup             View = "signup"
	ViewUserDashboard      View = "user-dashboard"
	ViewSubmitReport       View = "submit-report"
	ViewMyReports          View = "my-reports"
	ViewMap                View = "map"
	ViewAdminDashboard     View = "admin-dashboard"
	ViewIncidentMonitoring View = "incident-monitoring"
	ViewAnalytics          View = "analytics"
	ViewResources          View = "resources"
	ViewAlerts             View = "alerts"
	ViewAbout              View = "about"
	ViewHelp               View = "help"
)

// DefaultView is shown for new and logged-out sessions.
const DefaultView = ViewHome

var knownViews = []View{
	ViewHome,
	ViewLogin,
	ViewSignup,
	ViewUserDashboard,
	ViewSubmitReport,
	ViewMyReports,
	ViewMap,
	ViewAdminDashboard,
	ViewIncidentMonitoring,
	ViewAnalytics,
	ViewResources,
	ViewAlerts,
	ViewAbout,
	ViewHelp,
}

// KnownViews returns every view identifier in menu order.
func KnownViews() []View {
	out := make([]View, len(knownViews))
	copy(out, knownViews)
	return out
}

// IsKnown reports whether v is one of the statically known identifiers.
func (v View) IsKnown() bool {
	for _, known := range knownViews {
		if v == known {
			return true
		}
	}
	return false
}

// ViewAccess describes who may enter a view.
type ViewAccess string

const (
	AccessPublic        ViewAccess = "public"
	AccessAuthenticated ViewAccess = "authenticated"
	AccessAdmin         ViewAccess = "admin"
)

var viewAccess = map[View]ViewAccess{
	ViewHome:               AccessPublic,
	ViewLogin:              AccessPublic,
	ViewSignup:             AccessPublic,
	ViewAbout:              AccessPublic,
	ViewHelp:               AccessPublic,
	ViewUserDashboard:      AccessAuthenticated,
	ViewSubmitReport:       AccessAuthenticated,
	ViewMyReports:          AccessAuthenticated,
	ViewMap:                AccessAuthenticated,
	ViewAdminDashboard:     AccessAdmin,
	ViewIncidentMonitoring: AccessAdmin,
	ViewAnalytics:          AccessAdmin,
	ViewResources:          AccessAdmin,
	ViewAlerts:             AccessAdmin,
}

// Access returns the access level of v. Unknown views report public access;
// callers check IsKnown separately.
func (v View) Access() ViewAccess {
	if access, ok := viewAccess[v]; ok {
		return access
	}
	return AccessPublic
}

// LandingView returns the view a freshly logged-in session lands on.
func LandingView(role Role) View {
	if role == RoleAdmin {
		return ViewAdminDashboard
	}
	return ViewUserDashboard
}
