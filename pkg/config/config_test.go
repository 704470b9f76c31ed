package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_GeminiConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("GEMINI_API_KEY", "test-key")
	os.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	defer func() {
		os.Unsetenv("GEMINI_API_KEY")
		os.Unsetenv("GEMINI_MODEL")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify Gemini config
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("GEMINI_API_KEY")
	os.Unsetenv("GEMINI_MODEL")
	os.Unsetenv("SEARCH_MIN_RADIUS_KM")
	os.Unsetenv("SEARCH_MAX_RADIUS_KM")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 5, cfg.Search.MinRadiusKm)
	assert.Equal(t, 100, cfg.Search.MaxRadiusKm)
	assert.Equal(t, "static", cfg.Position.Provider)
}

func TestLoad_PositionConfig(t *testing.T) {
	os.Setenv("POSITION_PROVIDER", "google")
	os.Setenv("POSITION_LATITUDE", "45.8992")
	os.Setenv("POSITION_LONGITUDE", "6.1294")
	defer func() {
		os.Unsetenv("POSITION_PROVIDER")
		os.Unsetenv("POSITION_LATITUDE")
		os.Unsetenv("POSITION_LONGITUDE")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "google", cfg.Position.Provider)
	assert.Equal(t, 45.8992, cfg.Position.Latitude)
	assert.Equal(t, 6.1294, cfg.Position.Longitude)
}
