package gemini

import (
	"context"
	"sync"
	"time"

	"github.com/tripscout/tripscout/backend/internal/domain/entities"
	"github.com/tripscout/tripscout/backend/internal/domain/providers"
	"github.com/tripscout/tripscout/backend/pkg/config"
	apperrors "github.com/tripscout/tripscout/backend/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// Client implements the grounded itinerary generator on the Gemini API. The
// underlying SDK client is created once, on first use, so that a missing or
// invalid credential surfaces as a failure of the first search cycle rather
// than at startup.
type Client struct {
	apiKey string
	model  string

	initOnce sync.Once
	initErr  error
	client   *genai.Client
}

// NewClient creates a new Gemini client
func NewClient(cfg *config.GeminiConfig) providers.ItineraryGenerator {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Client{
		apiKey: cfg.APIKey,
		model:  model,
	}
}

// GenerateItinerary sends one grounded generation request and returns the
// response in its neutral, loosely-typed shape. One request, one response:
// no retry, no streaming, no timeout beyond the caller's context.
func (c *Client) GenerateItinerary(ctx context.Context, prompt string, cfg entities.RetrievalConfig) (*entities.GroundedResponse, error) {
	if err := c.ensureClient(ctx); err != nil {
		recordGeminiMetric(ctx, c.model, 0, err)
		return nil, err
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), buildGenerateConfig(cfg))
	if err != nil {
		recordGeminiMetric(ctx, c.model, time.Since(start), err)
		return nil, apperrors.NewExternalError("grounded generation request failed", err)
	}

	recordGeminiMetric(ctx, c.model, time.Since(start), nil)
	return toGroundedResponse(resp), nil
}

func (c *Client) ensureClient(ctx context.Context) error {
	c.initOnce.Do(func() {
		if c.apiKey == "" {
			c.initErr = apperrors.NewConfigurationError("gemini api key is not configured")
			return
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			c.initErr = apperrors.NewConfigurationError("failed to create gemini client: " + err.Error())
			return
		}
		c.client = client
	})
	return c.initErr
}

// buildGenerateConfig maps the retrieval configuration onto the SDK tools.
// Structured output is deliberately not requested: response schemas are
// incompatible with the maps grounding tool, so the answer stays free text.
func buildGenerateConfig(cfg entities.RetrievalConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{}

	if cfg.PlaceGrounding {
		out.Tools = append(out.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
	}
	if cfg.WebGrounding {
		out.Tools = append(out.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}
	if cfg.LocationBias != nil {
		out.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(cfg.LocationBias.Latitude),
					Longitude: genai.Ptr(cfg.LocationBias.Longitude),
				},
			},
		}
	}

	return out
}

// toGroundedResponse flattens the SDK response into the neutral grounded
// shape, preserving candidate order, chunk order and the optionality of every
// nested field.
func toGroundedResponse(resp *genai.GenerateContentResponse) *entities.GroundedResponse {
	if resp == nil {
		return nil
	}

	out := &entities.GroundedResponse{
		Text: responseText(resp),
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil {
			continue
		}
		out.Candidates = append(out.Candidates, entities.GroundedCandidate{
			GroundingMetadata: toGroundingMetadata(candidate.GroundingMetadata),
		})
	}

	return out
}

func toGroundingMetadata(metadata *genai.GroundingMetadata) *entities.GroundingMetadata {
	if metadata == nil {
		return nil
	}

	out := &entities.GroundingMetadata{}
	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		mapped := entities.GroundingChunk{}
		if chunk.Maps != nil {
			mapped.Place = &entities.GroundingSource{
				Title: chunk.Maps.Title,
				URI:   chunk.Maps.URI,
			}
		}
		if chunk.Web != nil {
			mapped.Web = &entities.GroundingSource{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			}
		}
		out.GroundingChunks = append(out.GroundingChunks, mapped)
	}

	return out
}

func responseText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		text += part.Text
	}
	return text
}

type geminiMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var geminiMetricsInit = false
var geminiMetricsHolder geminiMetrics

func ensureGeminiMetrics() {
	if geminiMetricsInit {
		return
	}
	meter := otel.Meter("github.com/tripscout/tripscout/backend/gemini")

	requestCount, err := meter.Int64Counter(
		"ai.gemini.request.count",
		metric.WithDescription("Number of Gemini requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.gemini.request.duration",
		metric.WithDescription("Gemini request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.gemini.request.errors",
		metric.WithDescription("Number of Gemini request errors"),
	)
	if err != nil {
		return
	}

	geminiMetricsHolder = geminiMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	geminiMetricsInit = true
}

func recordGeminiMetric(ctx context.Context, model string, duration time.Duration, err error) {
	ensureGeminiMetrics()
	if !geminiMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", model),
	}

	geminiMetricsHolder.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	geminiMetricsHolder.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		geminiMetricsHolder.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
