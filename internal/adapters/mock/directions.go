package mock

import (
	"context"
	"fmt"
	"sync"

	"running-route-service/internal/domain"
	"running-route-service/internal/ports"
)

// RouteFunc scripts the provider's answer to one query.
type RouteFunc func(ctx context.Context, q ports.RouteQuery) (*domain.RouteResult, error)

// DirectionsProvider is a scripted, call-recording DirectionsProvider.
// It is safe for concurrent use.
type DirectionsProvider struct {
	fn RouteFunc

	mu      sync.Mutex
	queries []ports.RouteQuery
}

func NewDirectionsProvider(fn RouteFunc) *DirectionsProvider {
	return &DirectionsProvider{fn: fn}
}

func (p *DirectionsProvider) Route(ctx context.Context, q ports.RouteQuery) (*domain.RouteResult, error) {
	p.mu.Lock()
	p.queries = append(p.queries, q)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.fn(ctx, q)
}

func (p *DirectionsProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queries)
}

// Queries returns a copy of every query received, in arrival order.
func (p *DirectionsProvider) Queries() []ports.RouteQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.RouteQuery(nil), p.queries...)
}

// FixedDistance answers every query with a route of km kilometers.
func FixedDistance(km float64) RouteFunc {
	return func(_ context.Context, q ports.RouteQuery) (*domain.RouteResult, error) {
		return RouteOfKm(q, km), nil
	}
}

// Failing answers every query with a provider error of the given kind.
func Failing(kind domain.ProviderErrorKind) RouteFunc {
	return func(_ context.Context, q ports.RouteQuery) (*domain.RouteResult, error) {
		return nil, domain.NewProviderError(kind, fmt.Errorf("scripted failure for %s -> %s", q.Origin, q.Destination))
	}
}

// Blocking waits until ctx is done and returns its error.
func Blocking() RouteFunc {
	return func(ctx context.Context, _ ports.RouteQuery) (*domain.RouteResult, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
}

// RouteOfKm builds a route for q of the given total length, split evenly
// across one leg per waypoint plus the final leg.
func RouteOfKm(q ports.RouteQuery, km float64) *domain.RouteResult {
	n := len(q.Waypoints) + 1
	total := int(km*1000 + 0.5)

	legs := make([]domain.Leg, 0, n)
	remaining := total
	for i := 0; i < n; i++ {
		meters := total / n
		if i == n-1 {
			meters = remaining
		}
		remaining -= meters

		legs = append(legs, domain.Leg{
			DistanceMeters:  meters,
			DurationSeconds: meters * 3 / 4,
			DistanceText:    fmt.Sprintf("%.1f km", float64(meters)/1000),
			DurationText:    fmt.Sprintf("%d mins", meters*3/4/60),
			Steps: []domain.Step{
				{Instruction: "Head <b>forward</b>", DistanceText: fmt.Sprintf("%d m", meters), DurationText: "1 min"},
			},
		})
	}

	return domain.NewRouteResult(q.Origin, q.Destination, q.Waypoints, legs, nil)
}
