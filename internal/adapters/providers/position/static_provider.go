package position

import (
	"context"
	"fmt"

	"github.com/tripscout/tripscout/backend/internal/domain/entities"
	"github.com/tripscout/tripscout/backend/internal/domain/providers"
)

// StaticPositionProvider returns a fixed position from configuration. It is
// used for deployments that know where they run, and as the test double.
type StaticPositionProvider struct {
	coordinates *entities.Coordinates
}

// NewStaticPositionProvider creates a provider pinned to the given position.
// Zero coordinates mean "position unknown".
func NewStaticPositionProvider(latitude, longitude float64) providers.PositionProvider {
	p := &StaticPositionProvider{}
	if latitude != 0 || longitude != 0 {
		p.coordinates = &entities.Coordinates{Latitude: latitude, Longitude: longitude}
	}
	return p
}

// CurrentPosition returns the configured position
func (p *StaticPositionProvider) CurrentPosition(ctx context.Context) (*entities.Coordinates, error) {
	if p.coordinates == nil {
		return nil, fmt.Errorf("no static position configured")
	}
	coords := *p.coordinates
	return &coords, nil
}
