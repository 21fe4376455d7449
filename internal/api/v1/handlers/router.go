package handlers

import (
	"net/http"
)

// NewRouter mounts the farm and weather routes. Unmatched paths get the JSON
// error envelope instead of the mux's plain-text 404.
func NewRouter(farms *FarmHandler, weather *WeatherHandler) http.Handler {
	mux := http.NewServeMux()
	farms.Register(mux)
	weather.Register(mux)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	})
	return mux
}
