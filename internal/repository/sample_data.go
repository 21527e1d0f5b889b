package repository

import "github.com/spec-kit/healthwatch/internal/domain"

// SampleReports returns the built-in incident reports.
func SampleReports() []domain.Report {
	return []domain.Report{
		{ID: 1, Type: domain.ReportTypeHealth, Title: "Fever Outbreak", Location: "Ward 5", Status: domain.ReportStatusInProgress, Date: "2025-12-20", Priority: domain.ReportPriorityHigh},
		{ID: 2, Type: domain.ReportTypeSanitation, Title: "Blocked Drainage", Location: "Main Street", Status: domain.ReportStatusPending, Date: "2025-12-19", Priority: domain.ReportPriorityMedium},
		{ID: 3, Type: domain.ReportTypeHealth, Title: "Food Poisoning", Location: "Market Area", Status: domain.ReportStatusResolved, Date: "2025-12-18", Priority: domain.ReportPriorityHigh},
		{ID: 4, Type: domain.ReportTypeSanitation, Title: "Garbage Overflow", Location: "Block B", Status: domain.ReportStatusInProgress, Date: "2025-12-17", Priority: domain.ReportPriorityLow},
		{ID: 5, Type: domain.ReportTypeHealth, Title: "Skin Infection", Location: "School Zone", Status: domain.ReportStatusPending, Date: "2025-12-16", Priority: domain.ReportPriorityMedium},
	}
}

// SampleFacilities returns the built-in health facilities.
func SampleFacilities() []domain.Facility {
	return []domain.Facility{
		{ID: 1, Name: "City General Hospital", Type: "Hospital", Capacity: 500, Available: 120, Lat: 28.6139, Lng: 77.2090},
		{ID: 2, Name: "Community Health Center", Type: "Clinic", Capacity: 50, Available: 15, Lat: 28.6229, Lng: 77.2190},
		{ID: 3, Name: "Mobile Health Unit", Type: "Mobile", Capacity: 20, Available: 8, Lat: 28.6339, Lng: 77.1990},
	}
}

// SampleIncidentTrend returns six months of incident counts.
func SampleIncidentTrend() []domain.IncidentTrendPoint {
	return []domain.IncidentTrendPoint{
		{Month: "Jan", Health: 45, Sanitation: 32},
		{Month: "Feb", Health: 52, Sanitation: 28},
		{Month: "Mar", Health: 38, Sanitation: 41},
		{Month: "Apr", Health: 65, Sanitation: 35},
		{Month: "May", Health: 48, Sanitation: 29},
		{Month: "Jun", Health: 72, Sanitation: 45},
	}
}

// SampleDiseaseShares returns the disease distribution.
func SampleDiseaseShares() []domain.DiseaseShare {
	return []domain.DiseaseShare{
		{Name: "Malaria", Value: 35, Color: "#ef4444"},
		{Name: "Cholera", Value: 25, Color: "#f97316"},
		{Name: "Typhoid", Value: 20, Color: "#eab308"},
		{Name: "Dengue", Value: 15, Color: "#22c55e"},
		{Name: "Others", Value: 5, Color: "#3b82f6"},
	}
}

// SampleMapPoints returns the interactive map markers.
func SampleMapPoints() []domain.MapPoint {
	return []domain.MapPoint{
		{ID: 1, Type: domain.MapPointHealth, X: 30, Y: 40, Label: "Fever Outbreak"},
		{ID: 2, Type: domain.MapPointSanitation, X: 50, Y: 30, Label: "Blocked Drain"},
		{ID: 3, Type: domain.MapPointFacility, X: 70, Y: 50, Label: "City Hospital"},
		{ID: 4, Type: domain.MapPointHealth, X: 25, Y: 60, Label: "Food Poisoning"},
		{ID: 5, Type: domain.MapPointSanitation, X: 60, Y: 70, Label: "Garbage Issue"},
		{ID: 6, Type: domain.MapPointFacility, X: 40, Y: 55, Label: "Health Center"},
	}
}
