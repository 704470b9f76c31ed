package services

import (
	"strings"

	"github.com/tripscout/tripscout/backend/internal/domain/entities"
)

// fallbackItineraryText is returned when the grounded answer carries no text
const fallbackItineraryText = "no activities found for this period"

// NormalizeGroundedResponse turns a loosely-typed grounded response into a
// stable search outcome. Missing text, candidates or metadata degrade to the
// fallback text and an empty source list; only a nil response escalates to an
// error outcome.
func NormalizeGroundedResponse(resp *entities.GroundedResponse) *entities.SearchOutcome {
	if resp == nil {
		return &entities.SearchOutcome{
			Status:  entities.OutcomeError,
			Message: "the activity search returned an unreadable answer",
		}
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		text = fallbackItineraryText
	}

	return &entities.SearchOutcome{
		Status:        entities.OutcomeSuccess,
		ItineraryText: text,
		Sources:       collectSources(resp),
	}
}

// collectSources maps the grounding chunks of the first candidate to typed
// source references, preserving response order. Chunks that match neither
// tagged shape, or whose URI is empty, are dropped; duplicates across the two
// grounding capabilities are kept as-is.
func collectSources(resp *entities.GroundedResponse) []entities.SourceReference {
	if len(resp.Candidates) == 0 {
		return nil
	}
	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil || len(metadata.GroundingChunks) == 0 {
		return nil
	}

	sources := make([]entities.SourceReference, 0, len(metadata.GroundingChunks))
	for _, chunk := range metadata.GroundingChunks {
		switch {
		case chunk.Place != nil && chunk.Place.URI != "":
			sources = append(sources, entities.SourceReference{
				Kind:  entities.SourceKindPlace,
				Title: chunk.Place.Title,
				URI:   chunk.Place.URI,
			})
		case chunk.Web != nil && chunk.Web.URI != "":
			sources = append(sources, entities.SourceReference{
				Kind:  entities.SourceKindWeb,
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}

	if len(sources) == 0 {
		return nil
	}
	return sources
}
