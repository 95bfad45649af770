package render

import (
	"fmt"
	"io"

	"github.com/twpayne/go-kml"

	"running-route-service/internal/domain"
)

// KMLRenderer writes the route as a KML document with one path placemark
// and one placemark per waypoint, for Google Earth and My Maps imports.
type KMLRenderer struct{}

func (KMLRenderer) ContentType() string { return "application/vnd.google-earth.kml+xml" }

func (KMLRenderer) Render(w io.Writer, res *domain.SynthesisResult) error {
	if res == nil || res.Route == nil {
		return fmt.Errorf("render kml: empty result")
	}
	route := res.Route
	name := fmt.Sprintf("%.2f %s %s", res.EstimatedDistance, res.Unit, res.Outcome)

	coords := make([]kml.Coordinate, 0, len(route.Geometry()))
	for _, p := range route.Geometry() {
		coords = append(coords, kml.Coordinate{Lon: p.Lng, Lat: p.Lat})
	}

	placemarks := []kml.Element{
		kml.Name(name),
		kml.Placemark(
			kml.Name("Route"),
			kml.Description(fmt.Sprintf("%d legs, %d s", len(route.Legs), route.TotalDurationSeconds())),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(coords...),
			),
		),
	}
	for i, wp := range route.Waypoints {
		placemarks = append(placemarks, kml.Placemark(
			kml.Name(fmt.Sprintf("Waypoint %d", i+1)),
			kml.Point(kml.Coordinates(kml.Coordinate{Lon: wp.Lng, Lat: wp.Lat})),
		))
	}

	if err := kml.KML(kml.Document(placemarks...)).WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("render kml: %w", err)
	}
	return nil
}
