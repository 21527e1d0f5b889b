package domain

// IncidentTrendPoint is one month of the incident trend chart.
type IncidentTrendPoint struct {
	Month      string `json:"month"`
	Health     int    `json:"health"`
	Sanitation int    `json:"sanitation"`
}

// DiseaseShare is one slice of the disease distribution chart.
type DiseaseShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// MapPointType tags markers on the interactive map.
type MapPointType string

const (
	MapPointHealth     MapPointType = "health"
	MapPointSanitation MapPointType = "sanitation"
	MapPointFacility   MapPointType = "facility"
)

// MapPoint is a marker positioned in percent of the map canvas.
type MapPoint struct {
	ID    int          `json:"id"`
	Type  MapPointType `json:"type"`
	X     int          `json:"x"`
	Y     int          `json:"y"`
	Label string       `json:"label"`
}

// StatCard is a headline figure on a dashboard.
type StatCard struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change,omitempty"`
}
