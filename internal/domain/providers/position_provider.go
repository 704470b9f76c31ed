package providers

import (
	"context"

	"github.com/tripscout/tripscout/backend/internal/domain/entities"
)

// PositionProvider supplies the searcher's current geographic position. It is
// queried once, eagerly, when the application becomes ready. A failure is not
// a fault: searches simply run without a location bias.
type PositionProvider interface {
	// CurrentPosition returns a best-effort position estimate
	CurrentPosition(ctx context.Context) (*entities.Coordinates, error)
}
