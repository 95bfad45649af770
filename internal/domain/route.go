package domain

// Ordered intermediate points a route must pass through.
type WaypointSet []GeoPoint

// One instruction within a leg. The text fields are passed through untouched.
type Step struct {
	Instruction  string
	DistanceText string
	DurationText string
}

// One origin->waypoint, waypoint->waypoint or waypoint->destination segment.
type Leg struct {
	DistanceMeters  int
	DurationSeconds int
	DistanceText    string
	DurationText    string
	Steps           []Step
}

// Represents a route fetched from the Directions Provider.
// TotalDistanceKm is always the sum of the leg distances.
type RouteResult struct {
	Origin          GeoPoint
	Destination     GeoPoint
	Waypoints       WaypointSet
	Legs            []Leg
	Path            []GeoPoint
	TotalDistanceKm float64
}

func NewRouteResult(origin, destination GeoPoint, waypoints WaypointSet, legs []Leg, path []GeoPoint) *RouteResult {
	meters := 0
	for _, l := range legs {
		meters += l.DistanceMeters
	}

	return &RouteResult{
		Origin:          origin,
		Destination:     destination,
		Waypoints:       waypoints,
		Legs:            legs,
		Path:            path,
		TotalDistanceKm: float64(meters) / 1000,
	}
}

func (r *RouteResult) TotalDurationSeconds() int {
	total := 0
	for _, l := range r.Legs {
		total += l.DurationSeconds
	}
	return total
}

// Geometry returns the decoded path, or the origin, waypoints and destination
// in order when the provider did not return one.
func (r *RouteResult) Geometry() []GeoPoint {
	if len(r.Path) > 0 {
		return r.Path
	}

	pts := make([]GeoPoint, 0, len(r.Waypoints)+2)
	pts = append(pts, r.Origin)
	pts = append(pts, r.Waypoints...)
	pts = append(pts, r.Destination)
	return pts
}

// A scored trial.
type Candidate struct {
	Trial  int
	Route  *RouteResult
	DiffKm float64
}
