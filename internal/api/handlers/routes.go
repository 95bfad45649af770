package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"running-route-service/internal/api/dto"
	"running-route-service/internal/domain"
	"running-route-service/internal/platform/obs"
	"running-route-service/internal/ports"
	"running-route-service/internal/services"
)

// ClientIDHeader keys supersession: a newer request with the same value
// cancels the older one.
const ClientIDHeader = "X-Client-ID"

type RouteSynthesizer interface {
	SynthesizeRoute(ctx context.Context, req domain.SynthesisRequest) (*domain.SynthesisResult, error)
}

type RouteHandler struct {
	Synth     RouteSynthesizer
	Places    ports.PlaceResolver
	Calls     *services.CallRegistry
	Renderers map[string]ports.RouteRenderer
}

// Synthesize answers POST /routes?format=json|geojson|gpx|kml.
func (h *RouteHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	var renderer ports.RouteRenderer
	if format != "" && format != "json" {
		var ok bool
		if renderer, ok = h.Renderers[format]; !ok {
			writeError(w, r, http.StatusBadRequest, "unknown format "+format)
			return
		}
	}

	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	unit, err := domain.ParseDistanceUnit(req.Unit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	mode, err := domain.ParseRouteMode(req.Mode)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	start, end, err := services.ResolveEndpoints(r.Context(), h.Places, services.Endpoints{
		Start:      req.Start.ToDomain(),
		StartQuery: req.StartQuery,
		End:        req.End.ToDomain(),
		EndQuery:   req.EndQuery,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	synthReq := domain.SynthesisRequest{
		Start:          start,
		End:            end,
		TargetDistance: req.Distance,
		Unit:           unit,
		Mode:           mode,
	}

	key := strings.TrimSpace(r.Header.Get(ClientIDHeader))
	res, err := h.Calls.Run(r.Context(), key, func(ctx context.Context) (*domain.SynthesisResult, error) {
		return h.Synth.SynthesizeRoute(ctx, synthReq)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if renderer == nil {
		writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(res))
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if err := renderer.Render(w, res); err != nil {
		log.Printf("req_id=%s render failed: format=%s err=%v", obs.RequestID(r.Context()), format, err)
	}
}

func (h *RouteHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var inputErr *domain.InputError

	switch {
	case errors.As(err, &inputErr):
		writeError(w, r, http.StatusBadRequest, inputErr.Error())
	case errors.Is(err, domain.ErrNoRouteFound):
		writeError(w, r, http.StatusUnprocessableEntity, "no route found")
	case errors.Is(err, services.ErrSuperseded):
		writeError(w, r, http.StatusConflict, "superseded by a newer request")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "route synthesis timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		log.Printf("req_id=%s synthesize cancelled: %v", obs.RequestID(r.Context()), err)
	default:
		log.Printf("req_id=%s synthesize failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
