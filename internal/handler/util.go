package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rahalah/travel-gateway/internal/model"
	"github.com/rahalah/travel-gateway/internal/render"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// StateResponse is the session view served to the presentation layer: the
// raw snapshot plus display-ready result sections in their stable order.
type StateResponse struct {
	model.Snapshot
	Sections []render.Section `json:"sections"`
}

func stateResponse(snap model.Snapshot) StateResponse {
	return StateResponse{
		Snapshot: snap,
		Sections: render.Sections(snap.Results),
	}
}
