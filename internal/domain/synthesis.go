package domain

import (
	"fmt"
	"math"
)

// User intent for one synthesis call.
// End is required in PointToPoint mode and must be omitted in Loop mode.
type SynthesisRequest struct {
	Start          *GeoPoint
	End            *GeoPoint
	TargetDistance float64
	Unit           DistanceUnit
	Mode           RouteMode
}

// Validate checks the request without touching the network.
func (r SynthesisRequest) Validate() error {
	if r.Start == nil {
		return &InputError{Field: "start", Msg: "start point is required"}
	}
	if !r.Start.Valid() {
		return &InputError{Field: "start", Msg: fmt.Sprintf("coordinates out of range: %s", r.Start)}
	}

	if math.IsNaN(r.TargetDistance) || math.IsInf(r.TargetDistance, 0) || r.TargetDistance <= 0 {
		return &InputError{Field: "distance", Msg: "target distance must be a positive number"}
	}

	if !r.Unit.Valid() {
		return &InputError{Field: "unit", Msg: fmt.Sprintf("unknown unit %q", r.Unit)}
	}

	switch r.Mode {
	case ModeLoop:
		if r.End != nil {
			return &InputError{Field: "end", Msg: "end point must be omitted for loop routes"}
		}
	case ModePointToPoint:
		if r.End == nil {
			return &InputError{Field: "end", Msg: "end point is required for point-to-point routes"}
		}
		if !r.End.Valid() {
			return &InputError{Field: "end", Msg: fmt.Sprintf("coordinates out of range: %s", r.End)}
		}
		if *r.End == *r.Start {
			return &InputError{Field: "end", Msg: "end point must differ from start point"}
		}
	default:
		return &InputError{Field: "mode", Msg: fmt.Sprintf("unknown mode %q", r.Mode)}
	}

	return nil
}

// TargetKm is the target distance normalized to kilometers.
func (r SynthesisRequest) TargetKm() float64 { return r.Unit.ToKm(r.TargetDistance) }

// How the final route was chosen.
type Outcome string

const (
	// Best candidate of the waypoint search.
	OutcomeSearch Outcome = "search"
	// Direct route accepted by the point-to-point short-circuit.
	OutcomeDirect Outcome = "direct"
	// Direct route returned because every detour trial failed.
	OutcomeFallback Outcome = "fallback"
)

// Final output of a synthesis call.
// EstimatedDistance is expressed in Unit and rounded to two decimals.
type SynthesisResult struct {
	EstimatedDistance float64
	Unit              DistanceUnit
	Route             *RouteResult
	Outcome           Outcome
	TrialsAttempted   int
	TrialsFailed      int
}
