package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"ulascansenturk/farm-records/internal/service"
)

type WeatherHandler struct {
	weatherService service.WeatherService
	timeout        time.Duration
}

func NewWeatherHandler(weatherService service.WeatherService, timeout time.Duration) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		timeout:        timeout,
	}
}

func (h *WeatherHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /farms/{id}/weather", h.IngestWeather)
	mux.HandleFunc("GET /farms/{id}/forecast", h.GetForecast)
	mux.HandleFunc("GET /weather", h.ListRecent)
}

// IngestWeather fetches today's conditions for the farm, stores them and
// responds with the stored record plus the forecast.
func (h *WeatherHandler) IngestWeather(w http.ResponseWriter, r *http.Request) {
	farmID, err := farmIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.weatherService.Ingest(ctx, farmID)
	if err != nil {
		log.Error().Err(err).Uint("farm_id", farmID).Msg("failed to ingest weather data")
		respondWithServiceError(w, err, "failed to ingest weather data")
		return
	}

	respondWithJSON(w, http.StatusOK, newIngestResponse(result))
}

func (h *WeatherHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	farmID, err := farmIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	days, err := h.weatherService.Forecast(ctx, farmID)
	if err != nil {
		log.Error().Err(err).Uint("farm_id", farmID).Msg("failed to get forecast")
		respondWithServiceError(w, err, "failed to get forecast")
		return
	}

	respondWithJSON(w, http.StatusOK, ForecastResponse{
		FarmID: farmID,
		Days:   newObservationResponses(days),
	})
}

func (h *WeatherHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	records, err := h.weatherService.RecentRecords(ctx, limit)
	if err != nil {
		log.Error().Err(err).Int("limit", limit).Msg("failed to list weather records")
		respondWithServiceError(w, err, "failed to list weather records")
		return
	}

	resp := RecentRecordsResponse{Records: make([]WeatherRecordResponse, 0, len(records))}
	for _, rec := range records {
		resp.Records = append(resp.Records, newWeatherRecordResponse(rec))
	}
	respondWithJSON(w, http.StatusOK, resp)
}
