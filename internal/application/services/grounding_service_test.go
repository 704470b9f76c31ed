package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripscout/tripscout/backend/internal/domain/entities"
)

func TestNormalizeGroundedResponse_NilResponseIsError(t *testing.T) {
	outcome := NormalizeGroundedResponse(nil)

	require.NotNil(t, outcome)
	assert.Equal(t, entities.OutcomeError, outcome.Status)
	assert.NotEmpty(t, outcome.Message)
}

func TestNormalizeGroundedResponse_EmptyTextFallsBack(t *testing.T) {
	outcome := NormalizeGroundedResponse(&entities.GroundedResponse{Text: "   "})

	assert.Equal(t, entities.OutcomeSuccess, outcome.Status)
	assert.Equal(t, fallbackItineraryText, outcome.ItineraryText)
	assert.Empty(t, outcome.Sources)
}

func TestNormalizeGroundedResponse_MissingMetadataIsSafe(t *testing.T) {
	variants := map[string]*entities.GroundedResponse{
		"no candidates":    {Text: "an itinerary"},
		"nil metadata":     {Text: "an itinerary", Candidates: []entities.GroundedCandidate{{}}},
		"no chunks":        {Text: "an itinerary", Candidates: []entities.GroundedCandidate{{GroundingMetadata: &entities.GroundingMetadata{}}}},
		"untagged chunks":  {Text: "an itinerary", Candidates: []entities.GroundedCandidate{{GroundingMetadata: &entities.GroundingMetadata{GroundingChunks: []entities.GroundingChunk{{}}}}}},
	}

	for name, resp := range variants {
		outcome := NormalizeGroundedResponse(resp)
		assert.Equal(t, entities.OutcomeSuccess, outcome.Status, name)
		assert.Equal(t, "an itinerary", outcome.ItineraryText, name)
		assert.Empty(t, outcome.Sources, name)
	}
}

func TestNormalizeGroundedResponse_MapsChunksInOrder(t *testing.T) {
	resp := &entities.GroundedResponse{
		Text: "day by day",
		Candidates: []entities.GroundedCandidate{{
			GroundingMetadata: &entities.GroundingMetadata{
				GroundingChunks: []entities.GroundingChunk{
					{Place: &entities.GroundingSource{Title: "Old Town Market", URI: "https://maps.example/market"}},
					{Web: &entities.GroundingSource{Title: "Festival listing", URI: "https://example.com/festival"}},
					{Place: &entities.GroundingSource{Title: "untitled place"}}, // empty URI, dropped
					{},
					{Web: &entities.GroundingSource{Title: "Recycling center", URI: "https://example.com/recycling"}},
				},
			},
		}},
	}

	outcome := NormalizeGroundedResponse(resp)

	require.Len(t, outcome.Sources, 3)
	assert.Equal(t, entities.SourceKindPlace, outcome.Sources[0].Kind)
	assert.Equal(t, "Old Town Market", outcome.Sources[0].Title)
	assert.Equal(t, entities.SourceKindWeb, outcome.Sources[1].Kind)
	assert.Equal(t, "Festival listing", outcome.Sources[1].Title)
	assert.Equal(t, entities.SourceKindWeb, outcome.Sources[2].Kind)
	assert.Equal(t, "https://example.com/recycling", outcome.Sources[2].URI)
}

func TestNormalizeGroundedResponse_PlaceWinsOverWebInOneChunk(t *testing.T) {
	resp := &entities.GroundedResponse{
		Text: "day by day",
		Candidates: []entities.GroundedCandidate{{
			GroundingMetadata: &entities.GroundingMetadata{
				GroundingChunks: []entities.GroundingChunk{{
					Place: &entities.GroundingSource{Title: "The place", URI: "https://maps.example/place"},
					Web:   &entities.GroundingSource{Title: "The page", URI: "https://example.com/page"},
				}},
			},
		}},
	}

	outcome := NormalizeGroundedResponse(resp)

	require.Len(t, outcome.Sources, 1)
	assert.Equal(t, entities.SourceKindPlace, outcome.Sources[0].Kind)
}

func TestNormalizeGroundedResponse_OnlyFirstCandidateIsRead(t *testing.T) {
	resp := &entities.GroundedResponse{
		Text: "day by day",
		Candidates: []entities.GroundedCandidate{
			{},
			{GroundingMetadata: &entities.GroundingMetadata{
				GroundingChunks: []entities.GroundingChunk{
					{Web: &entities.GroundingSource{Title: "second candidate", URI: "https://example.com/second"}},
				},
			}},
		},
	}

	outcome := NormalizeGroundedResponse(resp)

	assert.Empty(t, outcome.Sources)
}

func TestNormalizeGroundedResponse_KeepsDuplicateSources(t *testing.T) {
	resp := &entities.GroundedResponse{
		Text: "day by day",
		Candidates: []entities.GroundedCandidate{{
			GroundingMetadata: &entities.GroundingMetadata{
				GroundingChunks: []entities.GroundingChunk{
					{Web: &entities.GroundingSource{Title: "Same page", URI: "https://example.com/page"}},
					{Web: &entities.GroundingSource{Title: "Same page", URI: "https://example.com/page"}},
				},
			},
		}},
	}

	outcome := NormalizeGroundedResponse(resp)

	assert.Len(t, outcome.Sources, 2)
}
