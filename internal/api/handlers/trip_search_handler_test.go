package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripscout/tripscout/backend/internal/application/services"
	"github.com/tripscout/tripscout/backend/internal/domain/entities"
	"github.com/tripscout/tripscout/backend/pkg/config"
)

type stubGenerator struct {
	release chan struct{}
	resp    *entities.GroundedResponse
	err     error
}

func (s *stubGenerator) GenerateItinerary(ctx context.Context, prompt string, cfg entities.RetrievalConfig) (*entities.GroundedResponse, error) {
	if s.release != nil {
		<-s.release
	}
	return s.resp, s.err
}

func newTestHandler(generator *stubGenerator) *TripSearchHandler {
	service := services.NewTripSearchService(generator, nil)
	return NewTripSearchHandler(service, config.SearchConfig{MinRadiusKm: 5, MaxRadiusKm: 100})
}

func submit(t *testing.T, handler *TripSearchHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/trips/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.SubmitSearch(rec, req)
	return rec
}

func TestSubmitSearch_AcceptsValidRequest(t *testing.T) {
	generator := &stubGenerator{release: make(chan struct{})}
	defer close(generator.release)
	handler := newTestHandler(generator)

	rec := submit(t, handler, `{"destination":"Annecy","start_date":"2026-07-10","end_date":"2026-07-12","radius_km":50}`)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	assert.NotEmpty(t, payload["search_id"])
	assert.Equal(t, string(entities.PhaseSearching), payload["phase"])
}

func TestSubmitSearch_RejectsInvalidBody(t *testing.T) {
	handler := newTestHandler(&stubGenerator{})

	rec := submit(t, handler, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitSearch_RejectsMalformedDates(t *testing.T) {
	handler := newTestHandler(&stubGenerator{})

	cases := []string{
		`{"destination":"Annecy","start_date":"10/07/2026","end_date":"2026-07-12","radius_km":50}`,
		`{"destination":"Annecy","start_date":"2026-07-10","end_date":"next friday","radius_km":50}`,
		`{"destination":"Annecy","start_date":"2026-07-12","end_date":"2026-07-10","radius_km":50}`,
	}

	for _, body := range cases {
		rec := submit(t, handler, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestSubmitSearch_RejectsRadiusOutOfBounds(t *testing.T) {
	handler := newTestHandler(&stubGenerator{})

	for _, body := range []string{
		`{"destination":"Annecy","start_date":"2026-07-10","end_date":"2026-07-12","radius_km":1}`,
		`{"destination":"Annecy","start_date":"2026-07-10","end_date":"2026-07-12","radius_km":500}`,
	} {
		rec := submit(t, handler, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestSubmitSearch_ConflictWhileSearching(t *testing.T) {
	generator := &stubGenerator{release: make(chan struct{})}
	defer close(generator.release)
	handler := newTestHandler(generator)

	body := `{"destination":"Annecy","start_date":"2026-07-10","end_date":"2026-07-12","radius_km":50}`

	first := submit(t, handler, body)
	require.Equal(t, http.StatusAccepted, first.Code)

	second := submit(t, handler, body)
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestGetCurrentSearch_ReturnsIdleState(t *testing.T) {
	handler := newTestHandler(&stubGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/api/trips/search/current", nil)
	rec := httptest.NewRecorder()
	handler.GetCurrentSearch(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var state entities.SearchState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.Equal(t, entities.PhaseIdle, state.Phase)
	assert.Nil(t, state.Outcome)
}
