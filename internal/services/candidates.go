package services

import (
	"math/rand/v2"

	"running-route-service/internal/domain"
	"running-route-service/internal/geo"
)

const (
	// LoopTrials is the fixed number of loop candidates sampled per call.
	LoopTrials = 12
	// LoopWaypoints is the number of waypoints spread evenly around the start.
	LoopWaypoints = 2
	// DetourTrials is the number of single-waypoint detours tried when the
	// direct point-to-point route is too short.
	DetourTrials = 10

	// Direct routes inside [ToleranceLow, ToleranceHigh] x target are accepted as-is.
	ToleranceLow  = 0.7
	ToleranceHigh = 1.3
)

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// TrialRandom returns the random source for one trial.
type TrialRandom func(trial int) RandomSource

// SeededTrials derives an independent, reproducible stream per trial from seed.
func SeededTrials(seed uint64) TrialRandom {
	return func(trial int) RandomSource {
		return rand.New(rand.NewPCG(seed, uint64(trial)))
	}
}

// UnseededTrials draws a fresh stream per trial.
func UnseededTrials() TrialRandom {
	return func(int) RandomSource {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// CandidateStrategy decides where the waypoints of each trial go.
// Generate must depend only on the trial index and the random source, so
// every waypoint set can be produced before any trial is dispatched.
type CandidateStrategy interface {
	Trials() int
	Generate(trial int, rnd RandomSource) domain.WaypointSet
}

// LoopStrategy spreads waypoints evenly around the start at roughly a third of
// the target distance, with a random rotation per trial.
type LoopStrategy struct {
	Start     domain.GeoPoint
	TargetKm  float64
	Waypoints int
}

func NewLoopStrategy(start domain.GeoPoint, targetKm float64) LoopStrategy {
	return LoopStrategy{Start: start, TargetKm: targetKm, Waypoints: LoopWaypoints}
}

func (s LoopStrategy) Trials() int { return LoopTrials }

func (s LoopStrategy) Generate(_ int, rnd RandomSource) domain.WaypointSet {
	n := s.Waypoints
	if n < 1 {
		n = LoopWaypoints
	}

	bearing := rnd.Float64() * 360
	out := make(domain.WaypointSet, 0, n)
	for j := 0; j < n; j++ {
		angle := bearing + float64(j)*(360/float64(n))
		dist := (s.TargetKm / 3) * (0.8 + 0.4*rnd.Float64())
		out = append(out, geo.Offset(s.Start, dist, angle))
	}
	return out
}

// DetourStrategy places one waypoint off the start/end midpoint, far enough to
// add half of the missing distance on each side of the detour.
type DetourStrategy struct {
	Start    domain.GeoPoint
	End      domain.GeoPoint
	DirectKm float64
	TargetKm float64
}

func (s DetourStrategy) Trials() int { return DetourTrials }

// DetourKm is the offset of the waypoint from the midpoint.
func (s DetourStrategy) DetourKm() float64 { return (s.TargetKm - s.DirectKm) / 2 }

func (s DetourStrategy) Generate(_ int, rnd RandomSource) domain.WaypointSet {
	mid := geo.ArithmeticMidpoint(s.Start, s.End)
	angle := rnd.Float64() * 360
	return domain.WaypointSet{geo.Offset(mid, s.DetourKm(), angle)}
}

func withinTolerance(km, targetKm float64) bool {
	return km >= targetKm*ToleranceLow && km <= targetKm*ToleranceHigh
}
