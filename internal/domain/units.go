package domain

import (
	"fmt"
	"math"
	"strings"
)

// KmPerMile is the conversion factor used at the request boundary.
const KmPerMile = 1.60934

type DistanceUnit string

const (
	UnitKilometers DistanceUnit = "km"
	UnitMiles      DistanceUnit = "mi"
)

func ParseDistanceUnit(s string) (DistanceUnit, error) {
	switch u := DistanceUnit(strings.ToLower(strings.TrimSpace(s))); u {
	case UnitKilometers, UnitMiles:
		return u, nil
	case "":
		return UnitKilometers, nil
	default:
		return "", &InputError{Field: "unit", Msg: fmt.Sprintf("unknown unit %q (want km or mi)", s)}
	}
}

func (u DistanceUnit) Valid() bool { return u == UnitKilometers || u == UnitMiles }

// ToKm converts a distance expressed in u to kilometers.
func (u DistanceUnit) ToKm(v float64) float64 {
	if u == UnitMiles {
		return v * KmPerMile
	}
	return v
}

// FromKm converts kilometers to u.
func (u DistanceUnit) FromKm(km float64) float64 {
	if u == UnitMiles {
		return km / KmPerMile
	}
	return km
}

// Round2 rounds to two decimal places, the precision reported to callers.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// RouteMode selects how the route closes. A Loop returns to its start,
// a PointToPoint route ends at a distinct destination.
type RouteMode string

const (
	ModeLoop         RouteMode = "loop"
	ModePointToPoint RouteMode = "point-to-point"
)

func ParseRouteMode(s string) (RouteMode, error) {
	switch m := RouteMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLoop, ModePointToPoint:
		return m, nil
	case "":
		return ModeLoop, nil
	default:
		return "", &InputError{Field: "mode", Msg: fmt.Sprintf("unknown mode %q (want loop or point-to-point)", s)}
	}
}
