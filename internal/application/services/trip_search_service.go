package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tripscout/tripscout/backend/internal/domain/entities"
	"github.com/tripscout/tripscout/backend/internal/domain/providers"
	apperrors "github.com/tripscout/tripscout/backend/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// failedSearchMessage is the single user-facing message for a failed cycle
const failedSearchMessage = "the activity search failed, please try again"

// TripSearchService is the orchestration state machine. It holds at most one
// in-flight search, exposes the current phase and outcome to the presentation
// layer, and publishes an event on every transition. There is no cancellation:
// once searching, the cycle runs to completion or failure.
type TripSearchService struct {
	generator providers.ItineraryGenerator
	position  providers.PositionProvider
	eventBus  providers.EventBus

	mu          sync.Mutex
	phase       entities.SearchPhase
	searchID    string
	outcome     *entities.SearchOutcome
	coordinates *entities.Coordinates
}

// NewTripSearchService creates a new trip search orchestrator
func NewTripSearchService(generator providers.ItineraryGenerator, position providers.PositionProvider) *TripSearchService {
	return &TripSearchService{
		generator: generator,
		position:  position,
		phase:     entities.PhaseIdle,
	}
}

// SetEventBus sets the event bus for phase transition events
func (s *TripSearchService) SetEventBus(eventBus providers.EventBus) {
	s.eventBus = eventBus
}

// WarmPosition queries the position provider once and keeps the result for
// subsequent searches. A failed or absent position is not an error: queries
// simply run without a location bias.
func (s *TripSearchService) WarmPosition(ctx context.Context) {
	if s.position == nil {
		return
	}

	coords, err := s.position.CurrentPosition(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Position unavailable; searches will run without a location bias")
		return
	}

	s.mu.Lock()
	s.coordinates = coords
	s.mu.Unlock()

	log.Info().
		Float64("latitude", coords.Latitude).
		Float64("longitude", coords.Longitude).
		Msg("Searcher position resolved")
}

// CurrentPosition returns the resolved position, or nil when unknown
func (s *TripSearchService) CurrentPosition() *entities.Coordinates {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coordinates
}

// Submit starts a new search cycle for the given trip query. While a search
// is in flight, further submissions are rejected with a conflict error; a
// submission from a settled state clears the previous outcome and re-enters
// the searching phase directly.
func (s *TripSearchService) Submit(ctx context.Context, query entities.TripQuery) (string, error) {
	s.mu.Lock()
	if s.phase == entities.PhaseSearching {
		s.mu.Unlock()
		return "", apperrors.NewConflictError("a search is already in progress")
	}

	searchID := uuid.NewString()
	s.phase = entities.PhaseSearching
	s.searchID = searchID
	s.outcome = nil
	if query.Coordinates == nil && s.coordinates != nil {
		coords := *s.coordinates
		query.Coordinates = &coords
	}
	s.mu.Unlock()

	recordSearchSubmitted(ctx)
	s.publishEvent(searchID, entities.SearchEventStarted, entities.PhaseSearching, nil)

	log.Info().
		Str("search_id", searchID).
		Str("destination", query.Destination).
		Str("start_date", query.StartDate).
		Str("end_date", query.EndDate).
		Int("radius_km", query.RadiusKm).
		Bool("location_bias", query.Coordinates != nil).
		Msg("Search started")

	// The cycle outlives the submitting request.
	go s.run(context.Background(), searchID, query)

	return searchID, nil
}

// Snapshot returns the current phase and, once settled, the outcome
func (s *TripSearchService) Snapshot() entities.SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := entities.SearchState{
		Phase:    s.phase,
		SearchID: s.searchID,
	}
	if s.outcome != nil {
		outcome := *s.outcome
		state.Outcome = &outcome
	}
	return state
}

// run executes one search cycle: build, invoke, normalize, settle
func (s *TripSearchService) run(ctx context.Context, searchID string, query entities.TripQuery) {
	prompt, retrievalCfg := BuildTripQuery(query)

	resp, err := s.generator.GenerateItinerary(ctx, prompt, retrievalCfg)
	if err != nil {
		log.Error().Err(err).Str("search_id", searchID).Msg("Grounded generation failed")
		s.settle(ctx, searchID, &entities.SearchOutcome{
			Status:  entities.OutcomeError,
			Message: failedSearchMessage,
		})
		return
	}

	s.settle(ctx, searchID, NormalizeGroundedResponse(resp))
}

// settle records the terminal outcome of a cycle and publishes the transition
func (s *TripSearchService) settle(ctx context.Context, searchID string, outcome *entities.SearchOutcome) {
	phase := entities.PhaseSucceeded
	eventType := entities.SearchEventSucceeded
	if outcome.Status == entities.OutcomeError {
		phase = entities.PhaseFailed
		eventType = entities.SearchEventFailed
	}

	s.mu.Lock()
	if s.searchID != searchID {
		// A newer cycle replaced this one; its result is stale.
		s.mu.Unlock()
		return
	}
	s.phase = phase
	s.outcome = outcome
	s.mu.Unlock()

	recordSearchOutcome(ctx, phase)
	s.publishEvent(searchID, eventType, phase, outcome)

	log.Info().
		Str("search_id", searchID).
		Str("phase", string(phase)).
		Int("sources", len(outcome.Sources)).
		Msg("Search settled")
}

func (s *TripSearchService) publishEvent(searchID string, eventType entities.SearchEventType, phase entities.SearchPhase, outcome *entities.SearchOutcome) {
	if s.eventBus == nil {
		return
	}

	event := &entities.SearchEvent{
		ID:        uuid.NewString(),
		SearchID:  searchID,
		EventType: eventType,
		Phase:     phase,
		Outcome:   outcome,
		Timestamp: time.Now(),
	}
	if err := s.eventBus.Publish(context.Background(), providers.EventChannelSearchUpdates, event); err != nil {
		log.Warn().Err(err).Str("search_id", searchID).Msg("Failed to publish search event")
	}
}

var (
	searchMetricsOnce    sync.Once
	searchSubmitCounter  metric.Int64Counter
	searchOutcomeCounter metric.Int64Counter
)

func initSearchMetrics() {
	meter := otel.Meter("github.com/tripscout/tripscout/backend/trip_search")

	if counter, err := meter.Int64Counter(
		"search.submit.count",
		metric.WithDescription("Number of trip searches submitted"),
	); err == nil {
		searchSubmitCounter = counter
	}
	if counter, err := meter.Int64Counter(
		"search.outcome.count",
		metric.WithDescription("Number of settled trip searches by phase"),
	); err == nil {
		searchOutcomeCounter = counter
	}
}

func recordSearchSubmitted(ctx context.Context) {
	searchMetricsOnce.Do(initSearchMetrics)
	if searchSubmitCounter == nil {
		return
	}
	searchSubmitCounter.Add(ctx, 1)
}

func recordSearchOutcome(ctx context.Context, phase entities.SearchPhase) {
	searchMetricsOnce.Do(initSearchMetrics)
	if searchOutcomeCounter == nil {
		return
	}
	searchOutcomeCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("search.phase", string(phase))))
}
