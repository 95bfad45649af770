package render

import (
	"fmt"
	"io"

	"github.com/tkrajina/gpxgo/gpx"

	"running-route-service/internal/domain"
)

// GPXRenderer writes the route as a GPX 1.1 track for watches and running apps.
// Waypoints are exported as named <wpt> elements.
type GPXRenderer struct {
	Creator string
}

func (GPXRenderer) ContentType() string { return "application/gpx+xml" }

func (r GPXRenderer) Render(w io.Writer, res *domain.SynthesisResult) error {
	if res == nil || res.Route == nil {
		return fmt.Errorf("render gpx: empty result")
	}
	route := res.Route

	creator := r.Creator
	if creator == "" {
		creator = "running-route-service"
	}

	doc := gpx.GPX{
		Version: "1.1",
		Creator: creator,
		Name:    fmt.Sprintf("%.2f %s %s", res.EstimatedDistance, res.Unit, res.Outcome),
	}

	seg := gpx.GPXTrackSegment{}
	for _, p := range route.Geometry() {
		seg.Points = append(seg.Points, gpx.GPXPoint{Point: gpx.Point{Latitude: p.Lat, Longitude: p.Lng}})
	}
	doc.Tracks = append(doc.Tracks, gpx.GPXTrack{Name: doc.Name, Segments: []gpx.GPXTrackSegment{seg}})

	for i, wp := range route.Waypoints {
		doc.Waypoints = append(doc.Waypoints, gpx.GPXPoint{
			Point: gpx.Point{Latitude: wp.Lat, Longitude: wp.Lng},
			Name:  fmt.Sprintf("Waypoint %d", i+1),
		})
	}

	b, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("render gpx: marshal: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("render gpx: write: %w", err)
	}
	return nil
}
