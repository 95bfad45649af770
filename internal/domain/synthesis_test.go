package domain

import (
	"errors"
	"math"
	"testing"
)

func TestSynthesisRequestValidate(t *testing.T) {
	start := &GeoPoint{Lat: 40.7128, Lng: -74.006}
	end := &GeoPoint{Lat: 40.73, Lng: -73.99}
	same := &GeoPoint{Lat: 40.7128, Lng: -74.006}

	tests := []struct {
		name  string
		req   SynthesisRequest
		field string
	}{
		{"loop ok", SynthesisRequest{Start: start, TargetDistance: 5, Unit: UnitKilometers, Mode: ModeLoop}, ""},
		{"p2p ok", SynthesisRequest{Start: start, End: end, TargetDistance: 3, Unit: UnitMiles, Mode: ModePointToPoint}, ""},
		{"missing start", SynthesisRequest{TargetDistance: 5, Unit: UnitKilometers, Mode: ModeLoop}, "start"},
		{"zero distance", SynthesisRequest{Start: start, Unit: UnitKilometers, Mode: ModeLoop}, "distance"},
		{"negative distance", SynthesisRequest{Start: start, TargetDistance: -1, Unit: UnitKilometers, Mode: ModeLoop}, "distance"},
		{"nan distance", SynthesisRequest{Start: start, TargetDistance: math.NaN(), Unit: UnitKilometers, Mode: ModeLoop}, "distance"},
		{"p2p missing end", SynthesisRequest{Start: start, TargetDistance: 5, Unit: UnitKilometers, Mode: ModePointToPoint}, "end"},
		{"p2p same end", SynthesisRequest{Start: start, End: same, TargetDistance: 5, Unit: UnitKilometers, Mode: ModePointToPoint}, "end"},
		{"loop with end", SynthesisRequest{Start: start, End: end, TargetDistance: 5, Unit: UnitKilometers, Mode: ModeLoop}, "end"},
		{"bad unit", SynthesisRequest{Start: start, TargetDistance: 5, Unit: "ft", Mode: ModeLoop}, "unit"},
		{"bad mode", SynthesisRequest{Start: start, TargetDistance: 5, Unit: UnitKilometers, Mode: "spiral"}, "mode"},
		{"bad start", SynthesisRequest{Start: &GeoPoint{Lat: 91}, TargetDistance: 5, Unit: UnitKilometers, Mode: ModeLoop}, "start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var ie *InputError
			if !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *InputError", err)
			}
			if ie.Field != tt.field {
				t.Fatalf("field = %q, want %q", ie.Field, tt.field)
			}
		})
	}
}

func TestUnitConversion(t *testing.T) {
	km := UnitMiles.ToKm(3.1)
	if math.Abs(km-4.988954) > 1e-9 {
		t.Fatalf("ToKm(3.1 mi) = %v, want 4.988954", km)
	}
	if got := Round2(UnitMiles.FromKm(4.989)); got != 3.1 {
		t.Fatalf("Round2(FromKm(4.989)) = %v, want 3.1", got)
	}
	if got := UnitKilometers.ToKm(5); got != 5 {
		t.Fatalf("km ToKm = %v, want 5", got)
	}
}

func TestNewRouteResultTotals(t *testing.T) {
	r := NewRouteResult(GeoPoint{}, GeoPoint{}, nil, []Leg{
		{DistanceMeters: 1200, DurationSeconds: 900},
		{DistanceMeters: 800, DurationSeconds: 600},
	}, nil)

	if r.TotalDistanceKm != 2.0 {
		t.Fatalf("TotalDistanceKm = %v, want 2.0", r.TotalDistanceKm)
	}
	if r.TotalDurationSeconds() != 1500 {
		t.Fatalf("TotalDurationSeconds = %d, want 1500", r.TotalDurationSeconds())
	}
	if len(r.Geometry()) != 2 {
		t.Fatalf("Geometry fallback len = %d, want 2", len(r.Geometry()))
	}
}

func TestParseGeoPoint(t *testing.T) {
	p, err := ParseGeoPoint(" 40.7128, -74.006 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat != 40.7128 || p.Lng != -74.006 {
		t.Fatalf("point = %+v", p)
	}

	for _, bad := range []string{"", "40.7", "a,b", "100,0"} {
		if _, err := ParseGeoPoint(bad); err == nil {
			t.Errorf("ParseGeoPoint(%q) expected error", bad)
		}
	}
}
