package mock

import (
	"context"
	"strings"
	"sync"

	"running-route-service/internal/domain"
)

// PlaceResolver resolves queries from a fixed table, case-insensitively.
type PlaceResolver struct {
	places map[string]domain.GeoPoint

	mu    sync.Mutex
	calls int
}

func NewPlaceResolver(places map[string]domain.GeoPoint) *PlaceResolver {
	m := make(map[string]domain.GeoPoint, len(places))
	for k, v := range places {
		m[strings.ToLower(k)] = v
	}
	return &PlaceResolver{places: m}
}

func (r *PlaceResolver) Resolve(_ context.Context, query string) (domain.GeoPoint, bool, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	p, ok := r.places[strings.ToLower(strings.TrimSpace(query))]
	return p, ok, nil
}

func (r *PlaceResolver) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
