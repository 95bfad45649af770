package domain

import (
	"errors"
	"fmt"
)

// ErrNoRouteFound is returned when the search produced no usable route.
var ErrNoRouteFound = errors.New("no route found")

// InputError reports a request that was rejected before any provider call.
type InputError struct {
	Field string
	Msg   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Msg)
}

type ProviderErrorKind string

const (
	KindNetwork         ProviderErrorKind = "network"
	KindNoRouteFound    ProviderErrorKind = "no_route_found"
	KindQuotaExceeded   ProviderErrorKind = "quota_exceeded"
	KindInvalidWaypoint ProviderErrorKind = "invalid_waypoint"
)

// ProviderError is the failure of one Directions Provider query.
// It discards a single trial and is never surfaced to the caller on its own.
type ProviderError struct {
	Kind ProviderErrorKind
	Err  error
}

func NewProviderError(kind ProviderErrorKind, err error) *ProviderError {
	return &ProviderError{Kind: kind, Err: err}
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider error kind=%s", e.Kind)
	}
	return fmt.Sprintf("provider error kind=%s: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
