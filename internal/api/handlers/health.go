package handlers

import (
	"net/http"
)

type HealthHandler struct {
	Provider    string
	PlaceSearch bool
}

// Health reports liveness plus which directions backend is wired. It never calls the provider.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]any{
		"status":       "ok",
		"provider":     h.Provider,
		"place_search": h.PlaceSearch,
	}
	writeJSON(w, r, http.StatusOK, res)
}
