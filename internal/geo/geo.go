// Package geo holds the spherical geometry used to place candidate waypoints.
package geo

import (
	"math"

	"running-route-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by every formula in this package.
const EarthRadiusKm = 6371.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Offset returns the point reached by travelling distanceKm along a great
// circle from origin, starting on bearingDeg (clockwise from true north).
// Bearings need not be normalized. The returned longitude is wrapped to [-180, 180).
func Offset(origin domain.GeoPoint, distanceKm, bearingDeg float64) domain.GeoPoint {
	delta := distanceKm / EarthRadiusKm
	theta := toRad(bearingDeg)
	lat1 := toRad(origin.Lat)
	lng1 := toRad(origin.Lng)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lng2 := lng1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)

	return domain.GeoPoint{Lat: toDeg(lat2), Lng: wrapLng(toDeg(lng2))}
}

func wrapLng(lng float64) float64 {
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return math.NaN()
	}
	w := math.Mod(lng+180, 360)
	if w < 0 {
		w += 360
	}
	return w - 180
}

// Haversine returns the great-circle distance between a and b in kilometers.
func Haversine(a, b domain.GeoPoint) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLat := lat2 - lat1
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// ArithmeticMidpoint averages latitude and longitude component-wise.
// It is not the geodesic midpoint and drifts near the poles and the antimeridian.
func ArithmeticMidpoint(a, b domain.GeoPoint) domain.GeoPoint {
	return domain.GeoPoint{Lat: (a.Lat + b.Lat) / 2, Lng: (a.Lng + b.Lng) / 2}
}
