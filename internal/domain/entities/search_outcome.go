package entities

// SourceKind distinguishes map-place sources from web-page sources
type SourceKind string

const (
	SourceKindPlace SourceKind = "place"
	SourceKindWeb   SourceKind = "web"
)

// SourceReference is one renderable source that grounded the itinerary
type SourceReference struct {
	Kind  SourceKind `json:"kind"`
	Title string     `json:"title"`
	URI   string     `json:"uri"`
}

// Outcome status values
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// SearchOutcome is the terminal value of one search cycle. On success,
// ItineraryText holds the day-by-day answer (or a fallback message) and
// Sources the ordered grounding references. On error, Message holds a single
// user-facing string.
type SearchOutcome struct {
	Status        string            `json:"status"`
	ItineraryText string            `json:"itinerary_text,omitempty"`
	Sources       []SourceReference `json:"sources,omitempty"`
	Message       string            `json:"message,omitempty"`
}

// SearchPhase is the current phase of the orchestration state machine
type SearchPhase string

const (
	PhaseIdle      SearchPhase = "idle"
	PhaseSearching SearchPhase = "searching"
	PhaseSucceeded SearchPhase = "succeeded"
	PhaseFailed    SearchPhase = "failed"
)

// SearchState is the published view of the state machine: the current phase,
// the identifier of the most recent search cycle, and its outcome once the
// cycle has settled.
type SearchState struct {
	Phase    SearchPhase    `json:"phase"`
	SearchID string         `json:"search_id,omitempty"`
	Outcome  *SearchOutcome `json:"outcome,omitempty"`
}
