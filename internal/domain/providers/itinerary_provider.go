package providers

import (
	"context"

	"github.com/tripscout/tripscout/backend/internal/domain/entities"
)

// ItineraryGenerator invokes the external grounded generation capability:
// one request, one response, no retry and no streaming. All transport and
// service failures surface as a single error; the caller does not branch on
// the failure kind.
type ItineraryGenerator interface {
	// GenerateItinerary sends the prompt with the given retrieval
	// configuration and returns the raw grounded response
	GenerateItinerary(ctx context.Context, prompt string, cfg entities.RetrievalConfig) (*entities.GroundedResponse, error)
}
