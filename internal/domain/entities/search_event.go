package entities

import "time"

// SearchEventType identifies the kind of search lifecycle event
type SearchEventType string

const (
	// SearchEventStarted is published when a search enters the searching phase
	SearchEventStarted SearchEventType = "search.started"

	// SearchEventSucceeded is published when a search settles successfully
	SearchEventSucceeded SearchEventType = "search.succeeded"

	// SearchEventFailed is published when a search settles with a failure
	SearchEventFailed SearchEventType = "search.failed"
)

// SearchEvent is published on every phase transition of the orchestration
// state machine so the presentation layer can follow a search in real time.
type SearchEvent struct {
	ID        string          `json:"id"`
	SearchID  string          `json:"search_id"`
	EventType SearchEventType `json:"event_type"`
	Phase     SearchPhase     `json:"phase"`
	Outcome   *SearchOutcome  `json:"outcome,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
