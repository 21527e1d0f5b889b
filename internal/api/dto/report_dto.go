package dto

import "github.com/spec-kit/healthwatch/internal/domain"

// ReportSubmitRequest payload for POST /reports.
type ReportSubmitRequest struct {
	Type        string `json:"type"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Severity    string `json:"severity"`
}

// ReportStatusRequest payload for POST /reports/:id/status.
type ReportStatusRequest struct {
	Status string `json:"status"`
}

// ReportActionResponse returns the validated report and where the session
// moved. Persisted is always false; the catalog is read-only.
type ReportActionResponse struct {
	Report     domain.Report      `json:"report"`
	Persisted  bool               `json:"persisted"`
	Transition TransitionResponse `json:"navigation"`
}
