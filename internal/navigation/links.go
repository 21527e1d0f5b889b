package navigation

import "github.com/spec-kit/healthwatch/internal/domain"

// Link is a navigation entry shown to the session.
type Link struct {
	Label  string      `json:"label"`
	View   domain.View `json:"view,omitempty"`
	Action string      `json:"action,omitempty"`
	Active bool        `json:"active,omitempty"`
}

// Links groups the desktop bar, the mobile menu, and the account actions.
type Links struct {
	Desktop []Link `json:"desktop"`
	Mobile  []Link `json:"mobile"`
	Account []Link `json:"account"`
}

const (
	ActionLogout = "logout"
)

// VisibleLinks returns the navigation entries for a session state. Links only
// hide targets; Controller.Navigate is what enforces access in guarded mode.
func VisibleLinks(session domain.Session, view domain.ViewState) Links {
	links := Links{}

	links.Desktop = append(links.Desktop, Link{Label: "Home", View: domain.ViewHome})
	links.Mobile = append(links.Mobile, Link{Label: "Home", View: domain.ViewHome})

	switch {
	case session.HasRole(domain.RoleUser):
		links.Desktop = append(links.Desktop,
			Link{Label: "Dashboard", View: domain.ViewUserDashboard},
			Link{Label: "Map", View: domain.ViewMap},
		)
		links.Mobile = append(links.Mobile,
			Link{Label: "Dashboard", View: domain.ViewUserDashboard},
			Link{Label: "Submit Report", View: domain.ViewSubmitReport},
			Link{Label: "My Reports", View: domain.ViewMyReports},
			Link{Label: "Interactive Map", View: domain.ViewMap},
		)
	case session.HasRole(domain.RoleAdmin):
		links.Desktop = append(links.Desktop,
			Link{Label: "Dashboard", View: domain.ViewAdminDashboard},
			Link{Label: "Analytics", View: domain.ViewAnalytics},
		)
		links.Mobile = append(links.Mobile,
			Link{Label: "Dashboard", View: domain.ViewAdminDashboard},
			Link{Label: "Monitoring", View: domain.ViewIncidentMonitoring},
			Link{Label: "Analytics", View: domain.ViewAnalytics},
			Link{Label: "Resources", View: domain.ViewResources},
			Link{Label: "Alerts", View: domain.ViewAlerts},
		)
	}

	links.Desktop = append(links.Desktop,
		Link{Label: "About", View: domain.ViewAbout},
		Link{Label: "Help", View: domain.ViewHelp},
	)
	links.Mobile = append(links.Mobile,
		Link{Label: "About", View: domain.ViewAbout},
		Link{Label: "Help & Support", View: domain.ViewHelp},
	)

	if session.Authenticated {
		links.Account = []Link{{Label: "Logout", Action: ActionLogout}}
	} else {
		links.Account = []Link{
			{Label: "Login", View: domain.ViewLogin},
			{Label: "Sign Up", View: domain.ViewSignup},
		}
	}

	markActive(links.Desktop, view.CurrentPage)
	return links
}

func markActive(links []Link, current domain.View) {
	for i := range links {
		links[i].Active = links[i].View == current
	}
}
