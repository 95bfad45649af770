package handlers

import (
	"log"
	"net/http"
	"strings"

	"running-route-service/internal/api/dto"
	"running-route-service/internal/platform/obs"
	"running-route-service/internal/ports"
)

type PlaceHandler struct {
	Places ports.PlaceResolver
}

// Lookup answers GET /places?q=... with the best matching point.
func (h *PlaceHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.Places == nil {
		writeError(w, r, http.StatusNotImplemented, "place search is not configured")
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, http.StatusBadRequest, "q is required")
		return
	}

	p, ok, err := h.Places.Resolve(r.Context(), q)
	if err != nil {
		log.Printf("req_id=%s place lookup failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusBadGateway, "place search failed")
		return
	}
	if !ok {
		writeError(w, r, http.StatusNotFound, "no place matches query")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PlaceResponse{Query: q, Point: dto.FromPoint(p)})
}
