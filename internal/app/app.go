// Package app turns a Config into the concrete adapters behind the ports.
// Both the HTTP server and the CLI are built from it.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"running-route-service/internal/adapters/cache"
	"running-route-service/internal/adapters/google"
	"running-route-service/internal/adapters/ors"
	"running-route-service/internal/adapters/render"
	"running-route-service/internal/config"
	"running-route-service/internal/platform/db"
	"running-route-service/internal/ports"
	"running-route-service/internal/services"
)

type App struct {
	Provider  ports.DirectionsProvider
	Places    ports.PlaceResolver
	Synth     *services.Synthesizer
	Renderers map[string]ports.RouteRenderer

	closers []func() error
}

// Build wires the configured provider, place resolver and cache.
// random may be nil for unseeded trials.
func Build(ctx context.Context, cfg *config.Config, random services.TrialRandom) (*App, error) {
	a := &App{
		Renderers: Renderers(),
	}

	switch cfg.DirectionsProvider {
	case config.ProviderGoogle:
		client, err := google.NewClient(cfg.GoogleAPIKey, cfg.ProviderRateLimit)
		if err != nil {
			return nil, fmt.Errorf("build app: %w", err)
		}
		a.Provider = google.NewDirectionsProvider(client)
		a.Places = google.NewPlaceResolver(client)
	case config.ProviderORS:
		client, err := ors.NewClient(cfg.ORSAPIKey, cfg.ORSBaseURL)
		if err != nil {
			return nil, fmt.Errorf("build app: %w", err)
		}
		a.Provider = ors.NewDirectionsProvider(client)
		a.Places = ors.NewPlaceResolver(client)
	default:
		return nil, fmt.Errorf("build app: unknown directions provider %q", cfg.DirectionsProvider)
	}

	placeCache, err := a.openPlaceCache(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("build app: %w", err)
	}
	if placeCache != nil {
		a.Places = cache.NewCachingResolver(a.Places, placeCache)
	}

	a.Synth = services.NewSynthesizer(a.Provider, services.Options{
		Workers:      cfg.Workers,
		TrialTimeout: cfg.TrialTimeout,
		CallTimeout:  cfg.CallTimeout,
		EarlyExit:    cfg.EarlyExit,
		Random:       random,
	})

	log.Printf("app ready: provider=%s place_cache=%s workers=%d early_exit=%t",
		cfg.DirectionsProvider, cfg.PlaceCache, cfg.Workers, cfg.EarlyExit)
	return a, nil
}

func (a *App) openPlaceCache(ctx context.Context, cfg *config.Config) (ports.PlaceCache, error) {
	switch cfg.PlaceCache {
	case config.PlaceCachePostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)

		if err := cache.InitSchema(ctx, conn); err != nil {
			return nil, err
		}
		return cache.NewSQLPlaceCache(conn, cfg.PlaceCacheTTL), nil
	case config.PlaceCacheRedis:
		client, err := cache.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return cache.NewRedisPlaceCache(client, cfg.PlaceCacheTTL), nil
	default:
		return nil, nil
	}
}

// Close releases cache connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && !errors.Is(err, sql.ErrConnDone) && !errors.Is(err, redis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Renderers returns the non-JSON output formats keyed by format name.
func Renderers() map[string]ports.RouteRenderer {
	return map[string]ports.RouteRenderer{
		"geojson": render.GeoJSONRenderer{},
		"gpx":     render.GPXRenderer{Creator: "running-route-service"},
		"kml":     render.KMLRenderer{},
	}
}
