// Package config reads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGoogle = "google"
	ProviderORS    = "ors"

	PlaceCacheNone     = "none"
	PlaceCachePostgres = "postgres"
	PlaceCacheRedis    = "redis"
)

type Config struct {
	Port string

	DirectionsProvider string
	GoogleAPIKey       string
	ORSAPIKey          string
	ORSBaseURL         string
	ProviderRateLimit  int

	Workers      int
	TrialTimeout time.Duration
	CallTimeout  time.Duration
	EarlyExit    bool

	PlaceCache    string
	DatabaseURL   string
	RedisURL      string
	PlaceCacheTTL time.Duration
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:               Get("PORT", "8080"),
		DirectionsProvider: strings.ToLower(Get("DIRECTIONS_PROVIDER", ProviderGoogle)),
		GoogleAPIKey:       strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		ORSAPIKey:          strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		ORSBaseURL:         Get("ORS_BASE_URL", ""),
		ProviderRateLimit:  getInt("PROVIDER_RATE_LIMIT", 10, &errs),
		Workers:            getInt("SYNTH_WORKERS", 4, &errs),
		TrialTimeout:       getDuration("SYNTH_TRIAL_TIMEOUT", 10*time.Second, &errs),
		CallTimeout:        getDuration("SYNTH_CALL_TIMEOUT", 60*time.Second, &errs),
		EarlyExit:          getBool("SYNTH_EARLY_EXIT", false, &errs),
		PlaceCache:         strings.ToLower(Get("PLACE_CACHE", PlaceCacheNone)),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
		PlaceCacheTTL:      getDuration("PLACE_CACHE_TTL", 720*time.Hour, &errs),
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Workers > 8 {
		cfg.Workers = 8
	}

	switch cfg.DirectionsProvider {
	case ProviderGoogle:
		if cfg.GoogleAPIKey == "" {
			errs = append(errs, errors.New("GOOGLE_MAPS_API_KEY is required for DIRECTIONS_PROVIDER=google"))
		}
	case ProviderORS:
		if cfg.ORSAPIKey == "" {
			errs = append(errs, errors.New("ORS_API_KEY is required for DIRECTIONS_PROVIDER=ors"))
		}
	default:
		errs = append(errs, fmt.Errorf("DIRECTIONS_PROVIDER=%q: want google or ors", cfg.DirectionsProvider))
	}

	switch cfg.PlaceCache {
	case PlaceCacheNone:
	case PlaceCachePostgres:
		if cfg.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for PLACE_CACHE=postgres"))
		}
	case PlaceCacheRedis:
		if cfg.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for PLACE_CACHE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("PLACE_CACHE=%q: want none, postgres or redis", cfg.PlaceCache))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, errs *[]error) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s=%q: %w", key, v, err))
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s=%q: %w", key, v, err))
		return fallback
	}
	return d
}

func getBool(key string, fallback bool, errs *[]error) bool {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s=%q: %w", key, v, err))
		return fallback
	}
	return b
}
