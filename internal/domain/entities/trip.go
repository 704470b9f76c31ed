package entities

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TripQuery describes one trip search submitted by a user. An empty
// Destination means "near the searcher's current position". Date ordering
// (StartDate <= EndDate) is the caller's responsibility.
type TripQuery struct {
	Destination string       `json:"destination"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	RadiusKm    int          `json:"radius_km"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// RetrievalConfig is the derived grounding configuration sent alongside the
// prompt. Both grounding capabilities are always requested; LocationBias is
// set only when the searcher's coordinates were known at build time.
type RetrievalConfig struct {
	PlaceGrounding bool
	WebGrounding   bool
	LocationBias   *Coordinates
}
