package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/twpayne/go-polyline"

	"running-route-service/internal/domain"
	"running-route-service/internal/platform/obs"
	"running-route-service/internal/ports"
)

// ORS error codes that identify the request's points as the problem.
const (
	codeRouteNotFound     = 2009
	codePointNotFound     = 2010
	codeRouteTooLong      = 2004
	codeUnsupportedPoints = 2099
)

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
	Units        string      `json:"units"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Segments []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Steps    []struct {
				Distance    float64 `json:"distance"`
				Duration    float64 `json:"duration"`
				Instruction string  `json:"instruction"`
			} `json:"steps"`
		} `json:"segments"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// DirectionsProvider implements ports.DirectionsProvider using the
// OpenRouteService directions endpoint. Each call is a single POST.
//
// The foot-walking profile never routes over motorways, so AvoidHighways
// needs no extra option.
type DirectionsProvider struct {
	client *Client
}

func NewDirectionsProvider(client *Client) *DirectionsProvider {
	return &DirectionsProvider{client: client}
}

func (o *DirectionsProvider) Route(ctx context.Context, q ports.RouteQuery) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "ors.Directions")(&err)

	profile, err := profileFor(q.TravelMode)
	if err != nil {
		return nil, domain.NewProviderError(domain.KindInvalidWaypoint, err)
	}

	coords := make([][]float64, 0, len(q.Waypoints)+2)
	coords = append(coords, q.Origin.LngLat())
	for _, wp := range q.Waypoints {
		coords = append(coords, wp.LngLat())
	}
	coords = append(coords, q.Destination.LngLat())

	payload, err := json.Marshal(directionsRequest{Coordinates: coords, Instructions: true, Units: "m"})
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/json", o.client.baseURL, profile)
	req, err := o.client.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, domain.NewProviderError(domain.KindNetwork, err)
	}

	resp, err := o.client.do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, domain.NewProviderError(domain.KindNetwork, fmt.Errorf("decode directions response: %w", err))
	}

	if len(dr.Routes) == 0 {
		return nil, domain.NewProviderError(domain.KindNoRouteFound, errors.New("directions returned no routes"))
	}

	rt := dr.Routes[0]
	legs := make([]domain.Leg, 0, len(rt.Segments))
	for _, seg := range rt.Segments {
		steps := make([]domain.Step, 0, len(seg.Steps))
		for _, s := range seg.Steps {
			steps = append(steps, domain.Step{
				Instruction:  s.Instruction,
				DistanceText: formatMeters(s.Distance),
				DurationText: formatSeconds(s.Duration),
			})
		}

		// ORS returns float metrics; round to nearest integer for domain consistency.
		legs = append(legs, domain.Leg{
			DistanceMeters:  int(math.Round(seg.Distance)),
			DurationSeconds: int(math.Round(seg.Duration)),
			DistanceText:    formatMeters(seg.Distance),
			DurationText:    formatSeconds(seg.Duration),
			Steps:           steps,
		})
	}

	var path []domain.GeoPoint
	if rt.Geometry != "" {
		decoded, _, err := polyline.DecodeCoords([]byte(rt.Geometry))
		if err != nil {
			return nil, domain.NewProviderError(domain.KindNetwork, fmt.Errorf("decode geometry: %w", err))
		}
		path = make([]domain.GeoPoint, 0, len(decoded))
		for _, c := range decoded {
			path = append(path, domain.GeoPoint{Lat: c[0], Lng: c[1]})
		}
	}

	return domain.NewRouteResult(q.Origin, q.Destination, q.Waypoints, legs, path), nil
}

func profileFor(m ports.TravelMode) (string, error) {
	switch m {
	case ports.TravelModeWalking, "":
		return "foot-walking", nil
	default:
		return "", fmt.Errorf("unsupported travel mode %q", m)
	}
}

func classify(err error) *domain.ProviderError {
	var he *httpStatusError
	if !errors.As(err, &he) {
		return domain.NewProviderError(domain.KindNetwork, err)
	}

	switch he.Code {
	case http.StatusTooManyRequests, http.StatusForbidden:
		return domain.NewProviderError(domain.KindQuotaExceeded, err)
	}

	var body errorResponse
	if json.Unmarshal([]byte(he.Body), &body) == nil {
		switch body.Error.Code {
		case codeRouteNotFound:
			return domain.NewProviderError(domain.KindNoRouteFound, err)
		case codePointNotFound, codeRouteTooLong, codeUnsupportedPoints:
			return domain.NewProviderError(domain.KindInvalidWaypoint, err)
		}
	}

	switch {
	case he.Code == http.StatusNotFound:
		return domain.NewProviderError(domain.KindNoRouteFound, err)
	case he.Code >= 400 && he.Code < 500:
		return domain.NewProviderError(domain.KindInvalidWaypoint, err)
	default:
		return domain.NewProviderError(domain.KindNetwork, err)
	}
}

func formatMeters(m float64) string {
	if m >= 1000 {
		return fmt.Sprintf("%.1f km", m/1000)
	}
	return fmt.Sprintf("%d m", int(math.Round(m)))
}

func formatSeconds(s float64) string {
	mins := int(math.Round(s / 60))
	if mins <= 1 {
		return "1 min"
	}
	return fmt.Sprintf("%d mins", mins)
}
