package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Immutable geographic point in degrees.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Return the point as [lng, lat] for GeoJSON and ORS compatibility.
func (p GeoPoint) LngLat() []float64 { return []float64{p.Lng, p.Lat} }

// String formats the point as "lat,lng", the form Directions APIs accept.
func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.Lat, 'f', 7, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 7, 64)
}

// Valid reports whether the point is finite and inside the usual lat/lng ranges.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// ParseGeoPoint parses "lat,lng".
func ParseGeoPoint(s string) (GeoPoint, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return GeoPoint{}, fmt.Errorf("parse point %q: expected \"lat,lng\"", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("parse point %q: latitude: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("parse point %q: longitude: %w", s, err)
	}

	p := GeoPoint{Lat: lat, Lng: lng}
	if !p.Valid() {
		return GeoPoint{}, fmt.Errorf("parse point %q: out of range", s)
	}
	return p, nil
}
