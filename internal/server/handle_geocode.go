package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/iamorlov/cityguesser/internal/geocode"
)

type GeocodeResponse struct {
	City string `json:"city"`
}

// handleReverseGeocode proxies map clicks to the reverse geocoder so
// the upstream endpoint and its rate limits stay server-side.
func handleReverseGeocode(rev geocode.Reverser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		if err != nil || lat < -90 || lat > 90 {
			writeError(w, http.StatusBadRequest, "invalid lat")
			return
		}
		lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if err != nil || lng < -180 || lng > 180 {
			writeError(w, http.StatusBadRequest, "invalid lng")
			return
		}

		city, err := rev.CityAt(r.Context(), lat, lng, sess.Locale)
		if errors.Is(err, geocode.ErrNoCity) {
			writeError(w, http.StatusNotFound, "no city at this location")
			return
		}
		if err != nil {
			writeError(w, http.StatusBadGateway, "reverse geocoding failed")
			return
		}

		writeJSON(w, http.StatusOK, GeocodeResponse{City: city})
	}
}
