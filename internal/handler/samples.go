package handler

import (
	"net/http"

	"github.com/rahalah/travel-gateway/internal/model"
)

// sampleQueries are the per-mode suggestions surfaced in the UI sidebar.
var sampleQueries = map[model.Mode][]string{
	model.ModeTrip: {
		"Plan a 7-day trip to Riyadh",
		"What's a good itinerary for a weekend in Jeddah?",
		"Suggest activities for a family vacation in Mecca",
	},
	model.ModeFlight: {
		"Find flights from Riyadh to Jeddah next weekend",
		"What are the cheapest flights to Madinah in July?",
		"Show me business class options from Riyadh to Dubai",
	},
	model.ModeHotel: {
		"Find hotels in Riyadh near Kingdom Centre",
		"What are the best 5-star hotels in Jeddah?",
		"Show me family-friendly accommodations in Mecca",
	},
}

// Samples handles GET /api/samples?mode=
func Samples(w http.ResponseWriter, r *http.Request) {
	mode := model.DefaultMode
	if m := r.URL.Query().Get("mode"); m != "" {
		parsed, err := model.ParseMode(m)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		mode = parsed
	}

	writeJSON(w, http.StatusOK, model.SampleQueriesResponse{
		Mode:    mode,
		Queries: sampleQueries[mode],
	})
}
