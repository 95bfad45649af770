package google

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"running-route-service/internal/domain"
	"running-route-service/internal/platform/obs"
)

// PlaceResolver implements ports.PlaceResolver with the Google Geocoding API.
type PlaceResolver struct {
	client *maps.Client
}

func NewPlaceResolver(client *maps.Client) *PlaceResolver {
	return &PlaceResolver{client: client}
}

func (g *PlaceResolver) Resolve(ctx context.Context, query string) (_ domain.GeoPoint, _ bool, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return domain.GeoPoint{}, false, nil
		}
		return domain.GeoPoint{}, false, fmt.Errorf("google geocode %q: %w", query, err)
	}
	if len(results) == 0 {
		return domain.GeoPoint{}, false, nil
	}

	loc := results[0].Geometry.Location
	return domain.GeoPoint{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}
