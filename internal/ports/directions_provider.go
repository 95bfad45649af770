package ports

import (
	"context"
	"running-route-service/internal/domain"
)

type TravelMode string

const TravelModeWalking TravelMode = "walking"

// One Directions Provider request. Waypoint order is preserved by the provider.
type RouteQuery struct {
	Origin        domain.GeoPoint
	Destination   domain.GeoPoint
	Waypoints     domain.WaypointSet
	TravelMode    TravelMode
	AvoidHighways bool
}

// Contract for the external service that computes an actual travel route.
type DirectionsProvider interface {
	// Return the route through the query's points, or a *domain.ProviderError.
	// Implementations make exactly one upstream call and never retry.
	Route(ctx context.Context, q RouteQuery) (*domain.RouteResult, error)
}
