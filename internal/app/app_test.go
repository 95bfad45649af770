package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"running-route-service/internal/adapters/cache"
	"running-route-service/internal/adapters/google"
	"running-route-service/internal/adapters/ors"
	"running-route-service/internal/config"
)

func TestBuildGoogleWithoutCache(t *testing.T) {
	cfg := &config.Config{
		DirectionsProvider: config.ProviderGoogle,
		GoogleAPIKey:       "AIza-test",
		ProviderRateLimit:  10,
		Workers:            4,
		PlaceCache:         config.PlaceCacheNone,
	}

	a, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &google.DirectionsProvider{}, a.Provider)
	assert.IsType(t, &google.PlaceResolver{}, a.Places)
	assert.NotNil(t, a.Synth)
	assert.Contains(t, a.Renderers, "gpx")
	assert.Contains(t, a.Renderers, "geojson")
	assert.Contains(t, a.Renderers, "kml")
}

func TestBuildORSWithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{
		DirectionsProvider: config.ProviderORS,
		ORSAPIKey:          "ors-test",
		Workers:            2,
		PlaceCache:         config.PlaceCacheRedis,
		RedisURL:           "redis://" + mr.Addr(),
		PlaceCacheTTL:      time.Hour,
	}

	a, err := Build(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.IsType(t, &ors.DirectionsProvider{}, a.Provider)
	caching, ok := a.Places.(*cache.CachingResolver)
	require.True(t, ok, "places should be wrapped in a cache")
	assert.IsType(t, &ors.PlaceResolver{}, caching.Upstream)

	assert.NoError(t, a.Close())
}

func TestBuildFailsOnUnreachableRedis(t *testing.T) {
	cfg := &config.Config{
		DirectionsProvider: config.ProviderORS,
		ORSAPIKey:          "ors-test",
		PlaceCache:         config.PlaceCacheRedis,
		RedisURL:           "redis://127.0.0.1:1/0",
	}

	_, err := Build(context.Background(), cfg, nil)
	assert.Error(t, err)
}
