package position

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tripscout/tripscout/backend/internal/domain/entities"
	"github.com/tripscout/tripscout/backend/internal/domain/providers"
)

const (
	googleGeolocateURL = "https://www.googleapis.com/geolocation/v1/geolocate"
	defaultHTTPTimeout = 8 * time.Second
)

// GooglePositionProvider resolves the server's current position through the
// Google Geolocation API. The estimate is best-effort: any failure simply
// leaves the position unknown.
type GooglePositionProvider struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewGooglePositionProvider creates a new Google position provider
func NewGooglePositionProvider(apiKey string) providers.PositionProvider {
	return NewGooglePositionProviderWithOptions(apiKey, googleGeolocateURL, nil)
}

// NewGooglePositionProviderWithOptions allows overriding base URL and HTTP client (used for tests)
func NewGooglePositionProviderWithOptions(apiKey, baseURL string, httpClient *http.Client) providers.PositionProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleGeolocateURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GooglePositionProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// CurrentPosition queries the Geolocation API once and returns the estimate
func (g *GooglePositionProvider) CurrentPosition(ctx context.Context) (*entities.Coordinates, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("google geolocation api key is required")
	}

	body, err := json.Marshal(map[string]interface{}{"considerIp": true})
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s?key=%s", g.baseURL, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build geolocate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geolocate request returned status %d", resp.StatusCode)
	}

	var payload googleGeolocateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geolocate response: %w", err)
	}

	if payload.Location == nil {
		return nil, fmt.Errorf("geolocate response carried no location")
	}

	return &entities.Coordinates{
		Latitude:  payload.Location.Lat,
		Longitude: payload.Location.Lng,
	}, nil
}

type googleGeolocateResponse struct {
	Location *googleLocation `json:"location"`
	Accuracy float64         `json:"accuracy"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
