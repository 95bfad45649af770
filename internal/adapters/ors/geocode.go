package ors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"running-route-service/internal/domain"
	"running-route-service/internal/platform/obs"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// PlaceResolver implements ports.PlaceResolver using OpenRouteService
// (/geocode/search). Transient failures are retried.
type PlaceResolver struct {
	client *Client
	// Country restricts results to an ISO 3166-1 alpha-2 code when set.
	Country string
}

func NewPlaceResolver(client *Client) *PlaceResolver {
	return &PlaceResolver{client: client}
}

func (o *PlaceResolver) Resolve(ctx context.Context, query string) (_ domain.GeoPoint, _ bool, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := strings.Join(strings.Fields(query), " ")
	if norm == "" {
		return domain.GeoPoint{}, false, nil
	}

	endpoint := o.client.baseURL + "/geocode/search"
	resp, err := o.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("size", "1")
		if o.Country != "" {
			q.Set("boundary.country", o.Country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("ors geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GeoPoint{}, false, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.GeoPoint{}, false, nil
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.GeoPoint{}, false, fmt.Errorf("invalid coordinate format for %q", norm)
	}

	return domain.GeoPoint{Lng: coords[0], Lat: coords[1]}, true, nil
}
