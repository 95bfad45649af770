package services

import (
	"context"
	"fmt"
	"strings"

	"running-route-service/internal/domain"
	"running-route-service/internal/ports"
)

// Endpoints names a route's start and end either as points or as free text.
// A point wins over a query when both are given.
type Endpoints struct {
	Start      *domain.GeoPoint
	StartQuery string
	End        *domain.GeoPoint
	EndQuery   string
}

// ResolveEndpoints turns free-text queries into points before a
// SynthesisRequest is built. Unmatched queries are input errors.
func ResolveEndpoints(ctx context.Context, resolver ports.PlaceResolver, e Endpoints) (start, end *domain.GeoPoint, err error) {
	start, err = resolveOne(ctx, resolver, "start_query", e.Start, e.StartQuery)
	if err != nil {
		return nil, nil, err
	}

	end, err = resolveOne(ctx, resolver, "end_query", e.End, e.EndQuery)
	if err != nil {
		return nil, nil, err
	}

	return start, end, nil
}

func resolveOne(
	ctx context.Context,
	resolver ports.PlaceResolver,
	field string,
	p *domain.GeoPoint,
	query string,
) (*domain.GeoPoint, error) {
	if p != nil {
		return p, nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if resolver == nil {
		return nil, &domain.InputError{Field: field, Msg: "place search is not configured"}
	}

	got, ok, err := resolver.Resolve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("resolve endpoints: %s %q: %w", field, query, err)
	}
	if !ok {
		return nil, &domain.InputError{Field: field, Msg: fmt.Sprintf("no place matches %q", query)}
	}

	return &got, nil
}
