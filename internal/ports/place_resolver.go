package ports

import (
	"context"
	"running-route-service/internal/domain"
)

// Turns free text typed by a user into a point.
type PlaceResolver interface {
	// Resolve returns ok=false when nothing matches the query.
	Resolve(ctx context.Context, query string) (p domain.GeoPoint, ok bool, err error)
}

// Persistent store for resolved places, keyed by normalized query text.
type PlaceCache interface {
	Get(ctx context.Context, query string) (domain.GeoPoint, bool, error)
	Put(ctx context.Context, query string, p domain.GeoPoint) error
}
