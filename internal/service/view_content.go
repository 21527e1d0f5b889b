package service

import "github.com/spec-kit/healthwatch/internal/domain"

// Feature is a marketing tile on the home view.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QuickAction links a dashboard tile to a view.
type QuickAction struct {
	Label string      `json:"label"`
	View  domain.View `json:"view"`
}

// FAQ is one help-page question.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ImpactStory is a headline figure on the about view.
type ImpactStory struct {
	Title       string `json:"title"`
	Stat        string `json:"stat"`
	Description string `json:"description"`
}

// SanitationResource is a pooled piece of sanitation equipment.
type SanitationResource struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Active int    `json:"active"`
}

// SentAlert is an entry of the recently sent alerts list.
type SentAlert struct {
	Channel    string `json:"channel"`
	Title      string `json:"title"`
	Recipients int    `json:"recipients"`
	Sent       string `json:"sent"`
}

func homeStats() []domain.StatCard {
	return []domain.StatCard{
		{Label: "Reports Filed", Value: "12,458"},
		{Label: "Issues Resolved", Value: "10,234"},
		{Label: "Active Users", Value: "5,678"},
		{Label: "Areas Covered", Value: "156"},
	}
}

func homeFeatures() []Feature {
	return []Feature{
		{Title: "Incident Reporting", Description: "Report health and sanitation issues in your area quickly and easily."},
		{Title: "Interactive Mapping", Description: "View real-time incident locations and nearby health facilities."},
		{Title: "Analytics Dashboard", Description: "Track trends and patterns to prevent future outbreaks."},
		{Title: "Smart Alerts", Description: "Receive timely notifications about incidents in your area."},
		{Title: "Authority Access", Description: "Dedicated dashboard for authorities to manage and respond."},
		{Title: "Quick Response", Description: "Streamlined workflow for faster issue resolution."},
	}
}

func citizenQuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Submit Report", View: domain.ViewSubmitReport},
		{Label: "My Reports", View: domain.ViewMyReports},
		{Label: "View Map", View: domain.ViewMap},
		{Label: "Get Help", View: domain.ViewHelp},
	}
}

func adminStats() []domain.StatCard {
	return []domain.StatCard{
		{Label: "Active Incidents", Value: "47", Change: "+12%"},
		{Label: "Pending Review", Value: "23", Change: "-5%"},
		{Label: "Resolved Today", Value: "18", Change: "+25%"},
		{Label: "Active Users", Value: "1,234", Change: "+8%"},
	}
}

func adminQuickLinks() []QuickAction {
	return []QuickAction{
		{Label: "Incident Monitoring", View: domain.ViewIncidentMonitoring},
		{Label: "Analytics & Trends", View: domain.ViewAnalytics},
		{Label: "Resource Management", View: domain.ViewResources},
		{Label: "Alerts & Notifications", View: domain.ViewAlerts},
	}
}

func sanitationResources() []SanitationResource {
	return []SanitationResource{
		{ID: 1, Name: "Garbage Collection Trucks", Count: 25, Active: 20},
		{ID: 2, Name: "Drainage Cleaning Teams", Count: 15, Active: 12},
		{ID: 3, Name: "Water Testing Kits", Count: 100, Active: 45},
		{ID: 4, Name: "Sanitization Sprayers", Count: 30, Active: 28},
	}
}

func recentAlerts() []SentAlert {
	return []SentAlert{
		{Channel: "SMS", Title: "Health Alert: Fever Outbreak", Recipients: 245, Sent: "2 hours ago"},
		{Channel: "Email", Title: "Weekly Report Summary", Recipients: 50, Sent: "5 hours ago"},
		{Channel: "SMS", Title: "Water Contamination Warning", Recipients: 1200, Sent: "1 day ago"},
	}
}

const (
	aboutMission = "To empower communities with real-time health and sanitation monitoring tools, " +
		"enabling proactive responses to public health challenges and creating cleaner, " +
		"healthier living environments for all."
	aboutVision = "A world where every community has access to efficient health monitoring systems, " +
		"where disease outbreaks are detected early, and where sanitation issues are " +
		"resolved promptly for the benefit of all citizens."
)

func impactStories() []ImpactStory {
	return []ImpactStory{
		{Title: "Quick Response", Stat: "85%", Description: "Faster incident resolution time compared to traditional reporting methods"},
		{Title: "Outbreak Prevention", Stat: "12+", Description: "Disease outbreaks prevented through early detection and rapid response"},
		{Title: "Community Engagement", Stat: "50K+", Description: "Active users contributing to healthier communities nationwide"},
		{Title: "Data-Driven Decisions", Stat: "95%", Description: "Of authorities report better decision-making with our analytics"},
		{Title: "Real-Time Alerts", Stat: "2M+", Description: "Notifications sent to keep communities informed and safe"},
		{Title: "User Satisfaction", Stat: "4.8/5", Description: "Average rating from citizens and health authorities"},
	}
}

func helpFAQs() []FAQ {
	return []FAQ{
		{Question: "How do I submit a report?", Answer: `Navigate to your dashboard and click "Submit Report". Fill in the required details about the incident and submit.`},
		{Question: "How long does it take to resolve an issue?", Answer: "Resolution time depends on the severity and type of issue. Typically, high-priority issues are addressed within 24-48 hours."},
		{Question: "Can I track my report status?", Answer: `Yes, you can view all your reports and their current status in the "My Reports" section of your dashboard.`},
		{Question: "How do I become a verified authority?", Answer: "Contact our support team with your official credentials. Once verified, you will be granted authority access."},
	}
}
