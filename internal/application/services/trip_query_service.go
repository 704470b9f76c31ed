package services

import (
	"fmt"
	"strings"

	"github.com/tripscout/tripscout/backend/internal/domain/entities"
)

// currentPositionPlaceholder stands in for an empty destination so the
// geographic grounding resolves the area from the location bias or from
// context alone.
const currentPositionPlaceholder = "my current position"

// activityCategories are the six kinds of local happenings the itinerary
// must cover. Naming them explicitly in the prompt is what keeps the
// free-text answer focused and renderable; no structured output schema is
// requested because structured output is incompatible with geographic
// grounding.
var activityCategories = []string{
	"local markets",
	"flea markets",
	"garage sales",
	"escape games",
	"village festivals",
	"recycling centers",
}

// BuildTripQuery turns a trip query into the prompt text and retrieval
// configuration for the grounded generation service. It is pure and never
// fails: every input, including an empty destination, yields a valid prompt.
func BuildTripQuery(q entities.TripQuery) (string, entities.RetrievalConfig) {
	destination := strings.TrimSpace(q.Destination)
	if destination == "" {
		destination = currentPositionPlaceholder
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I am staying in %s from %s to %s. ", destination, q.StartDate, q.EndDate)
	fmt.Fprintf(&b, "List the activities and happenings taking place within %d km during that period. ", q.RadiusKm)
	fmt.Fprintf(&b, "Look specifically for: %s. ", strings.Join(activityCategories, ", "))
	fmt.Fprintf(&b, "Organize the answer day by day, with one section per calendar day from %s to %s. ", q.StartDate, q.EndDate)
	b.WriteString("For each activity give its name, place and schedule. Cite your sources whenever they are available.")

	cfg := entities.RetrievalConfig{
		PlaceGrounding: true,
		WebGrounding:   true,
	}
	if q.Coordinates != nil {
		cfg.LocationBias = &entities.Coordinates{
			Latitude:  q.Coordinates.Latitude,
			Longitude: q.Coordinates.Longitude,
		}
	}

	return b.String(), cfg
}
