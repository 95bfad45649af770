package dto

import "running-route-service/internal/domain"

type PointDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p *PointDTO) ToDomain() *domain.GeoPoint {
	if p == nil {
		return nil
	}
	return &domain.GeoPoint{Lat: p.Lat, Lng: p.Lng}
}

func FromPoint(p domain.GeoPoint) PointDTO { return PointDTO{Lat: p.Lat, Lng: p.Lng} }

// RouteRequest is the body of POST /routes.
// Start and End may be given as coordinates or as free-text queries.
type RouteRequest struct {
	Mode       string    `json:"mode"`
	Start      *PointDTO `json:"start"`
	StartQuery string    `json:"start_query"`
	End        *PointDTO `json:"end"`
	EndQuery   string    `json:"end_query"`
	Distance   float64   `json:"distance"`
	Unit       string    `json:"unit"`
}

type StepResponse struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
}

type LegResponse struct {
	DistanceMeters  int            `json:"distance_meters"`
	DurationSeconds int            `json:"duration_seconds"`
	DistanceText    string         `json:"distance_text"`
	DurationText    string         `json:"duration_text"`
	Steps           []StepResponse `json:"steps"`
}

type RouteDetail struct {
	Origin               PointDTO      `json:"origin"`
	Destination          PointDTO      `json:"destination"`
	Waypoints            []PointDTO    `json:"waypoints"`
	Legs                 []LegResponse `json:"legs"`
	Path                 []PointDTO    `json:"path,omitempty"`
	TotalDistanceKm      float64       `json:"total_distance_km"`
	TotalDurationSeconds int           `json:"total_duration_seconds"`
}

type RouteResponse struct {
	EstimatedDistance float64     `json:"estimated_distance"`
	Unit              string      `json:"unit"`
	Outcome           string      `json:"outcome"`
	TrialsAttempted   int         `json:"trials_attempted"`
	TrialsFailed      int         `json:"trials_failed"`
	Route             RouteDetail `json:"route"`
}

func NewRouteResponse(res *domain.SynthesisResult) RouteResponse {
	r := res.Route

	wps := make([]PointDTO, 0, len(r.Waypoints))
	for _, p := range r.Waypoints {
		wps = append(wps, FromPoint(p))
	}

	legs := make([]LegResponse, 0, len(r.Legs))
	for _, l := range r.Legs {
		steps := make([]StepResponse, 0, len(l.Steps))
		for _, s := range l.Steps {
			steps = append(steps, StepResponse{
				Instruction: s.Instruction,
				Distance:    s.DistanceText,
				Duration:    s.DurationText,
			})
		}

		legs = append(legs, LegResponse{
			DistanceMeters:  l.DistanceMeters,
			DurationSeconds: l.DurationSeconds,
			DistanceText:    l.DistanceText,
			DurationText:    l.DurationText,
			Steps:           steps,
		})
	}

	var path []PointDTO
	for _, p := range r.Path {
		path = append(path, FromPoint(p))
	}

	return RouteResponse{
		EstimatedDistance: res.EstimatedDistance,
		Unit:              string(res.Unit),
		Outcome:           string(res.Outcome),
		TrialsAttempted:   res.TrialsAttempted,
		TrialsFailed:      res.TrialsFailed,
		Route: RouteDetail{
			Origin:               FromPoint(r.Origin),
			Destination:          FromPoint(r.Destination),
			Waypoints:            wps,
			Legs:                 legs,
			Path:                 path,
			TotalDistanceKm:      domain.Round2(r.TotalDistanceKm),
			TotalDurationSeconds: r.TotalDurationSeconds(),
		},
	}
}

type PlaceResponse struct {
	Query string   `json:"query"`
	Point PointDTO `json:"point"`
}
