package api

import (
	"net/http"

	"running-route-service/internal/api/handlers"
	"running-route-service/internal/ports"
	"running-route-service/internal/services"
)

type Deps struct {
	// ProviderName is reported by /health.
	ProviderName string
	Synth        handlers.RouteSynthesizer
	Places       ports.PlaceResolver
	Calls        *services.CallRegistry
	Renderers    map[string]ports.RouteRenderer
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	calls := deps.Calls
	if calls == nil {
		calls = services.NewCallRegistry()
	}

	routeHandler := &handlers.RouteHandler{
		Synth:     deps.Synth,
		Places:    deps.Places,
		Calls:     calls,
		Renderers: deps.Renderers,
	}
	placeHandler := &handlers.PlaceHandler{Places: deps.Places}
	healthHandler := &handlers.HealthHandler{Provider: deps.ProviderName, PlaceSearch: deps.Places != nil}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/routes", routeHandler.Synthesize)
	mux.HandleFunc("/places", placeHandler.Lookup)

	return requestIDMiddleware(loggingMiddleware(mux))
}
