package google

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/twpayne/go-polyline"
	"googlemaps.github.io/maps"

	"running-route-service/internal/domain"
	"running-route-service/internal/platform/obs"
	"running-route-service/internal/ports"
)

// DirectionsProvider implements ports.DirectionsProvider using the Google
// Directions API. It is safe for concurrent use.
type DirectionsProvider struct {
	client *maps.Client
}

// NewClient builds a Maps client. rateLimit is in queries per second; zero keeps the library default.
func NewClient(apiKey string, rateLimit int, opts ...maps.ClientOption) (*maps.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	all := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if rateLimit > 0 {
		all = append(all, maps.WithRateLimit(rateLimit))
	}
	all = append(all, opts...)

	client, err := maps.NewClient(all...)
	if err != nil {
		return nil, fmt.Errorf("maps.NewClient: %w", err)
	}
	return client, nil
}

func NewDirectionsProvider(client *maps.Client) *DirectionsProvider {
	return &DirectionsProvider{client: client}
}

func (g *DirectionsProvider) Route(ctx context.Context, q ports.RouteQuery) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "google.Directions")(&err)

	req := &maps.DirectionsRequest{
		Origin:      q.Origin.String(),
		Destination: q.Destination.String(),
		Mode:        travelMode(q.TravelMode),
		Optimize:    false,
	}
	for _, wp := range q.Waypoints {
		req.Waypoints = append(req.Waypoints, wp.String())
	}
	if q.AvoidHighways {
		req.Avoid = []maps.Avoid{maps.AvoidHighways}
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return nil, classify(err)
	}
	if len(routes) == 0 {
		return nil, domain.NewProviderError(domain.KindNoRouteFound, errors.New("directions returned no routes"))
	}

	rt := routes[0]
	legs := make([]domain.Leg, 0, len(rt.Legs))
	for _, leg := range rt.Legs {
		steps := make([]domain.Step, 0, len(leg.Steps))
		for _, s := range leg.Steps {
			steps = append(steps, domain.Step{
				Instruction:  s.HTMLInstructions,
				DistanceText: s.Distance.HumanReadable,
				DurationText: formatDuration(s.Duration),
			})
		}

		legs = append(legs, domain.Leg{
			DistanceMeters:  leg.Distance.Meters,
			DurationSeconds: int(leg.Duration / time.Second),
			DistanceText:    leg.Distance.HumanReadable,
			DurationText:    formatDuration(leg.Duration),
			Steps:           steps,
		})
	}

	path, err := decodePath(rt.OverviewPolyline.Points)
	if err != nil {
		return nil, domain.NewProviderError(domain.KindNetwork, fmt.Errorf("decode overview polyline: %w", err))
	}

	return domain.NewRouteResult(q.Origin, q.Destination, q.Waypoints, legs, path), nil
}

func travelMode(m ports.TravelMode) maps.Mode {
	switch m {
	case ports.TravelModeWalking, "":
		return maps.TravelModeWalking
	default:
		return maps.Mode(m)
	}
}

// classify maps a Directions API status onto a provider error kind.
// The maps client reports non-OK statuses as "maps: STATUS - message".
func classify(err error) *domain.ProviderError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "ZERO_RESULTS"):
		return domain.NewProviderError(domain.KindNoRouteFound, err)
	case strings.Contains(msg, "NOT_FOUND"),
		strings.Contains(msg, "MAX_WAYPOINTS_EXCEEDED"),
		strings.Contains(msg, "MAX_ROUTE_LENGTH_EXCEEDED"),
		strings.Contains(msg, "INVALID_REQUEST"):
		return domain.NewProviderError(domain.KindInvalidWaypoint, err)
	case strings.Contains(msg, "OVER_QUERY_LIMIT"),
		strings.Contains(msg, "OVER_DAILY_LIMIT"),
		strings.Contains(msg, "REQUEST_DENIED"):
		return domain.NewProviderError(domain.KindQuotaExceeded, err)
	default:
		return domain.NewProviderError(domain.KindNetwork, err)
	}
}

func decodePath(encoded string) ([]domain.GeoPoint, error) {
	if encoded == "" {
		return nil, nil
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}

	path := make([]domain.GeoPoint, 0, len(coords))
	for _, c := range coords {
		path = append(path, domain.GeoPoint{Lat: c[0], Lng: c[1]})
	}
	return path, nil
}

// formatDuration renders a duration the way the Directions API labels it ("1 hour 5 mins").
func formatDuration(d time.Duration) string {
	mins := int(d.Round(time.Minute) / time.Minute)
	if d > 0 && mins == 0 {
		mins = 1
	}

	h, m := mins/60, mins%60
	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}

	switch {
	case h == 0:
		return plural(m, "min")
	case m == 0:
		return plural(h, "hour")
	default:
		return plural(h, "hour") + " " + plural(m, "min")
	}
}
