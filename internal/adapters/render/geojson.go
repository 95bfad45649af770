package render

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"running-route-service/internal/domain"
)

// GeoJSONRenderer writes the route as a FeatureCollection: one LineString for
// the path and one Point per start, waypoint and end.
type GeoJSONRenderer struct{}

func (GeoJSONRenderer) ContentType() string { return "application/geo+json" }

func (GeoJSONRenderer) Render(w io.Writer, res *domain.SynthesisResult) error {
	if res == nil || res.Route == nil {
		return fmt.Errorf("render geojson: empty result")
	}
	route := res.Route

	line := make(orb.LineString, 0, len(route.Geometry()))
	for _, p := range route.Geometry() {
		line = append(line, toOrb(p))
	}

	fc := geojson.NewFeatureCollection()

	path := geojson.NewFeature(line)
	path.Properties["estimated_distance"] = res.EstimatedDistance
	path.Properties["unit"] = string(res.Unit)
	path.Properties["outcome"] = string(res.Outcome)
	path.Properties["duration_seconds"] = route.TotalDurationSeconds()
	fc.Append(path)

	fc.Append(marker(route.Origin, "start", 0))
	for i, wp := range route.Waypoints {
		fc.Append(marker(wp, "waypoint", i+1))
	}
	fc.Append(marker(route.Destination, "end", len(route.Waypoints)+1))

	b, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("render geojson: marshal: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("render geojson: write: %w", err)
	}
	return nil
}

func marker(p domain.GeoPoint, role string, seq int) *geojson.Feature {
	f := geojson.NewFeature(toOrb(p))
	f.Properties["role"] = role
	f.Properties["seq"] = seq
	return f
}

func toOrb(p domain.GeoPoint) orb.Point { return orb.Point{p.Lng, p.Lat} }
