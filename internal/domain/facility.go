package domain

// Facility is a read-only health facility from the sample catalog.
type Facility struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Capacity  int     `json:"capacity"`
	Available int     `json:"available"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// AvailabilityPercent returns available beds as a share of capacity.
func (f Facility) AvailabilityPercent() float64 {
	if f.Capacity <= 0 {
		return 0
	}
	return float64(f.Available) / float64(f.Capacity) * 100
}
