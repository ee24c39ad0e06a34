//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/ocean-sense-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_ReverseGeocode_Callao(t *testing.T) {
	c := smokeClient(t)

	// Callao port, on land
	result, err := c.ReverseGeocode(context.Background(), -12.0566, -77.1181)
	require.NoError(t, err)

	assert.NotEmpty(t, result.FormattedAddress)
	assert.Contains(t, result.FormattedAddress, "Peru")
	assert.Greater(t, result.Confidence, 0.0)
}

func TestSmoke_ReverseGeocode_Offshore(t *testing.T) {
	c := smokeClient(t)

	// Open Pacific: any response, including none, is acceptable.
	_, err := c.ReverseGeocode(context.Background(), -14.0, -82.0)
	require.NoError(t, err)
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, 10, observability.NewMetricsForTesting())

	r1, err := cached.ReverseGeocode(context.Background(), -12.0566, -77.1181)
	require.NoError(t, err)

	r2, err := cached.ReverseGeocode(context.Background(), -12.0566, -77.1181)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
