package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"running-route-service/internal/domain"
	"running-route-service/internal/platform/obs"
	"running-route-service/internal/ports"
)

// QueryClient issues one walking, highway-avoiding route query per call and
// normalizes every failure into a *domain.ProviderError. It never retries.
type QueryClient struct {
	Provider     ports.DirectionsProvider
	TrialTimeout time.Duration
}

func (c *QueryClient) Query(
	ctx context.Context,
	origin domain.GeoPoint,
	destination domain.GeoPoint,
	waypoints domain.WaypointSet,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "directions.Query")(&err)

	if c.TrialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.TrialTimeout)
		defer cancel()
	}

	route, err := c.Provider.Route(ctx, ports.RouteQuery{
		Origin:        origin,
		Destination:   destination,
		Waypoints:     waypoints,
		TravelMode:    ports.TravelModeWalking,
		AvoidHighways: true,
	})
	if err != nil {
		var pe *domain.ProviderError
		if errors.As(err, &pe) {
			return nil, pe
		}
		// Timeouts, cancellations and transport failures all count as network errors.
		return nil, domain.NewProviderError(domain.KindNetwork, err)
	}

	if route == nil || len(route.Legs) == 0 {
		return nil, domain.NewProviderError(
			domain.KindNoRouteFound,
			fmt.Errorf("route %s -> %s with %d waypoints has no legs", origin, destination, len(waypoints)),
		)
	}

	return route, nil
}
