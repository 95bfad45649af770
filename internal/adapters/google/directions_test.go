package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"googlemaps.github.io/maps"

	"running-route-service/internal/domain"
	"running-route-service/internal/ports"
)

const directionsOK = `{
  "status": "OK",
  "geocoded_waypoints": [],
  "routes": [{
    "summary": "Broadway",
    "overview_polyline": {"points": "_p~iF~ps|U_ulLnnqC_mqNvxq` + "`" + `@"},
    "legs": [
      {
        "distance": {"text": "1.2 km", "value": 1200},
        "duration": {"text": "15 mins", "value": 900},
        "start_location": {"lat": 40.7128, "lng": -74.006},
        "end_location": {"lat": 40.72, "lng": -74.0},
        "steps": [{
          "html_instructions": "Head <b>north</b> on Broadway",
          "distance": {"text": "1.2 km", "value": 1200},
          "duration": {"text": "15 mins", "value": 900},
          "travel_mode": "WALKING"
        }]
      },
      {
        "distance": {"text": "0.8 km", "value": 800},
        "duration": {"text": "10 mins", "value": 600},
        "start_location": {"lat": 40.72, "lng": -74.0},
        "end_location": {"lat": 40.7128, "lng": -74.006},
        "steps": []
      }
    ]
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *maps.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("AIza-test-key", 0, maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func TestDirectionsProviderRoute(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(directionsOK))
	})

	origin := domain.GeoPoint{Lat: 40.7128, Lng: -74.006}
	wps := domain.WaypointSet{{Lat: 40.72, Lng: -74.0}, {Lat: 40.70, Lng: -74.01}}

	route, err := NewDirectionsProvider(client).Route(context.Background(), ports.RouteQuery{
		Origin:        origin,
		Destination:   origin,
		Waypoints:     wps,
		TravelMode:    ports.TravelModeWalking,
		AvoidHighways: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := got.URL.Query()
	if q.Get("mode") != "walking" {
		t.Fatalf("mode = %q, want walking", q.Get("mode"))
	}
	if q.Get("avoid") != "highways" {
		t.Fatalf("avoid = %q, want highways", q.Get("avoid"))
	}
	if parts := strings.Split(q.Get("waypoints"), "|"); len(parts) != 2 || strings.Contains(q.Get("waypoints"), "optimize") {
		t.Fatalf("waypoints = %q, want two unoptimized waypoints", q.Get("waypoints"))
	}

	if route.TotalDistanceKm != 2.0 {
		t.Fatalf("TotalDistanceKm = %v, want 2.0", route.TotalDistanceKm)
	}
	if len(route.Legs) != 2 || route.Legs[0].DurationSeconds != 900 {
		t.Fatalf("legs = %+v", route.Legs)
	}
	if route.Legs[0].Steps[0].Instruction != "Head <b>north</b> on Broadway" {
		t.Fatalf("instruction = %q", route.Legs[0].Steps[0].Instruction)
	}
	if route.Legs[0].DurationText != "15 mins" {
		t.Fatalf("duration text = %q, want 15 mins", route.Legs[0].DurationText)
	}
	if len(route.Path) != 3 {
		t.Fatalf("path len = %d, want 3", len(route.Path))
	}
	if len(route.Waypoints) != 2 {
		t.Fatalf("waypoints = %d, want 2", len(route.Waypoints))
	}
}

func TestDirectionsProviderClassifiesStatus(t *testing.T) {
	tests := []struct {
		status string
		kind   domain.ProviderErrorKind
	}{
		{"ZERO_RESULTS", domain.KindNoRouteFound},
		{"NOT_FOUND", domain.KindInvalidWaypoint},
		{"REQUEST_DENIED", domain.KindQuotaExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"status": "` + tt.status + `", "routes": []}`))
			})

			_, err := NewDirectionsProvider(client).Route(context.Background(), ports.RouteQuery{
				Origin:      domain.GeoPoint{Lat: 1, Lng: 1},
				Destination: domain.GeoPoint{Lat: 2, Lng: 2},
			})

			var pe *domain.ProviderError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *ProviderError", err)
			}
			if pe.Kind != tt.kind {
				t.Fatalf("kind = %q, want %q", pe.Kind, tt.kind)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		20 * time.Second:            "1 min",
		15 * time.Minute:            "15 mins",
		time.Hour:                   "1 hour",
		2*time.Hour + 5*time.Minute: "2 hours 5 mins",
		time.Hour + 1*time.Minute:   "1 hour 1 min",
	}
	for d, want := range tests {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestPlaceResolverResolve(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("address") == "nowhere" {
			_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
			return
		}
		_, _ = w.Write([]byte(`{"status": "OK", "results": [{"formatted_address": "Central Park, New York", "geometry": {"location": {"lat": 40.7829, "lng": -73.9654}}}]}`))
	})
	resolver := NewPlaceResolver(client)

	p, ok, err := resolver.Resolve(context.Background(), "central park")
	if err != nil || !ok {
		t.Fatalf("Resolve = %v %v", ok, err)
	}
	if p.Lat != 40.7829 || p.Lng != -73.9654 {
		t.Fatalf("point = %s", p)
	}

	_, ok, err = resolver.Resolve(context.Background(), "nowhere")
	if err != nil || ok {
		t.Fatalf("Resolve(nowhere) = %v %v, want not found", ok, err)
	}
}
