package config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "AIza-test")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.DirectionsProvider != ProviderGoogle {
		t.Fatalf("provider = %q, want google", cfg.DirectionsProvider)
	}
	if cfg.Workers != 4 || cfg.TrialTimeout != 10*time.Second || cfg.CallTimeout != time.Minute {
		t.Fatalf("synth settings = %d %v %v", cfg.Workers, cfg.TrialTimeout, cfg.CallTimeout)
	}
	if cfg.EarlyExit {
		t.Fatal("early exit should default to false")
	}
	if cfg.PlaceCache != PlaceCacheNone {
		t.Fatalf("place cache = %q, want none", cfg.PlaceCache)
	}
}

func TestFromEnvOverridesAndClamps(t *testing.T) {
	t.Setenv("DIRECTIONS_PROVIDER", "ORS")
	t.Setenv("ORS_API_KEY", "ors-key")
	t.Setenv("SYNTH_WORKERS", "50")
	t.Setenv("SYNTH_TRIAL_TIMEOUT", "3s")
	t.Setenv("SYNTH_EARLY_EXIT", "true")
	t.Setenv("PLACE_CACHE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DirectionsProvider != ProviderORS {
		t.Fatalf("provider = %q, want ors", cfg.DirectionsProvider)
	}
	if cfg.Workers != 8 {
		t.Fatalf("workers = %d, want clamp to 8", cfg.Workers)
	}
	if cfg.TrialTimeout != 3*time.Second || !cfg.EarlyExit {
		t.Fatalf("trial timeout = %v early exit = %v", cfg.TrialTimeout, cfg.EarlyExit)
	}
}

func TestFromEnvReportsAllProblems(t *testing.T) {
	t.Setenv("DIRECTIONS_PROVIDER", "google")
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("SYNTH_CALL_TIMEOUT", "soon")
	t.Setenv("PLACE_CACHE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("expected error")
	}

	for _, want := range []string{"GOOGLE_MAPS_API_KEY", "SYNTH_CALL_TIMEOUT", "DATABASE_URL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
