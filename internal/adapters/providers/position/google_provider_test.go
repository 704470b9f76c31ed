package position

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGooglePositionProvider_CurrentPosition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"location":{"lat":45.8992,"lng":6.1294},"accuracy":20.5}`))
	}))
	defer server.Close()

	provider := NewGooglePositionProviderWithOptions("test-key", server.URL, server.Client())

	coords, err := provider.CurrentPosition(context.Background())

	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.Equal(t, 45.8992, coords.Latitude)
	assert.Equal(t, 6.1294, coords.Longitude)
}

func TestGooglePositionProvider_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	provider := NewGooglePositionProviderWithOptions("test-key", server.URL, server.Client())

	coords, err := provider.CurrentPosition(context.Background())

	assert.Error(t, err)
	assert.Nil(t, coords)
}

func TestGooglePositionProvider_MissingLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accuracy":20.5}`))
	}))
	defer server.Close()

	provider := NewGooglePositionProviderWithOptions("test-key", server.URL, server.Client())

	coords, err := provider.CurrentPosition(context.Background())

	assert.Error(t, err)
	assert.Nil(t, coords)
}

func TestGooglePositionProvider_RequiresAPIKey(t *testing.T) {
	provider := NewGooglePositionProvider("")

	coords, err := provider.CurrentPosition(context.Background())

	assert.Error(t, err)
	assert.Nil(t, coords)
}

func TestStaticPositionProvider(t *testing.T) {
	provider := NewStaticPositionProvider(45.8992, 6.1294)

	coords, err := provider.CurrentPosition(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 45.8992, coords.Latitude)
	assert.Equal(t, 6.1294, coords.Longitude)
}

func TestStaticPositionProvider_Unconfigured(t *testing.T) {
	provider := NewStaticPositionProvider(0, 0)

	coords, err := provider.CurrentPosition(context.Background())

	assert.Error(t, err)
	assert.Nil(t, coords)
}
