package services

import (
	"math"
	"testing"

	"running-route-service/internal/geo"
)

// fixedRandom replays values in order.
type fixedRandom struct {
	vals []float64
	i    int
}

func (f *fixedRandom) Float64() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func TestLoopStrategyGeometry(t *testing.T) {
	s := NewLoopStrategy(start, 6)

	// bearing = 0.25*360 = 90, distances 2*(0.8+0.4*0) and 2*(0.8+0.4*0.5)
	wps := s.Generate(0, &fixedRandom{vals: []float64{0.25, 0, 0.5}})
	if len(wps) != 2 {
		t.Fatalf("waypoints = %d, want 2", len(wps))
	}

	want0 := geo.Offset(start, 1.6, 90)
	want1 := geo.Offset(start, 2.0, 270)
	if wps[0] != want0 || wps[1] != want1 {
		t.Fatalf("waypoints = %v, want [%s %s]", wps, want0, want1)
	}
}

func TestDetourStrategyGeometry(t *testing.T) {
	s := DetourStrategy{Start: start, End: end, DirectKm: 2, TargetKm: 5}
	if s.DetourKm() != 1.5 {
		t.Fatalf("detour = %v, want 1.5", s.DetourKm())
	}

	wps := s.Generate(3, &fixedRandom{vals: []float64{0.5}})
	want := geo.Offset(geo.ArithmeticMidpoint(start, end), 1.5, 180)
	if len(wps) != 1 || wps[0] != want {
		t.Fatalf("waypoints = %v, want [%s]", wps, want)
	}
}

func TestSeededTrialsAreIndependentAndStable(t *testing.T) {
	a := SeededTrials(5)
	b := SeededTrials(5)

	if a(0).Float64() != b(0).Float64() {
		t.Fatal("same seed and trial should give the same stream")
	}
	if a(0).Float64() == a(1).Float64() {
		t.Fatal("different trials should give different streams")
	}

	for i := 0; i < 100; i++ {
		v := UnseededTrials()(i).Float64()
		if v < 0 || v >= 1 || math.IsNaN(v) {
			t.Fatalf("value %v out of [0,1)", v)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		km   float64
		want bool
	}{
		{3.4, false},
		{3.51, true},
		{5.2, true},
		{6.49, true},
		{6.6, false},
	}
	for _, tt := range tests {
		if got := withinTolerance(tt.km, 5); got != tt.want {
			t.Errorf("withinTolerance(%v, 5) = %v, want %v", tt.km, got, tt.want)
		}
	}
}

var (
	_ CandidateStrategy = LoopStrategy{}
	_ CandidateStrategy = DetourStrategy{}
)
