package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"ulascansenturk/farm-records/internal/db/farm"
	"ulascansenturk/farm-records/internal/db/weatherrecord"
	"ulascansenturk/farm-records/internal/providers"
	"ulascansenturk/farm-records/internal/service"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	errorCode := "INTERNAL_ERROR"
	title := "Internal Server Error"

	switch code {
	case http.StatusBadRequest:
		errorCode = "BAD_REQUEST"
		title = "Bad Request"
	case http.StatusNotFound:
		errorCode = "NOT_FOUND"
		title = "Not Found"
	case http.StatusMethodNotAllowed:
		errorCode = "METHOD_NOT_ALLOWED"
		title = "Method Not Allowed"
	case http.StatusUnprocessableEntity:
		errorCode = "LOCATION_NOT_FOUND"
		title = "Unprocessable Entity"
	case http.StatusBadGateway:
		errorCode = "PROVIDER_UNAVAILABLE"
		title = "Bad Gateway"
	case http.StatusServiceUnavailable:
		errorCode = "SERVICE_UNAVAILABLE"
		title = "Service Unavailable"
	case http.StatusGatewayTimeout:
		errorCode = "TIMEOUT"
		title = "Gateway Timeout"
	}

	respondWithJSON(w, code, ErrorResponse{
		Errors: []Error{
			{
				Code:   errorCode,
				Detail: message,
				Status: code,
				Title:  title,
			},
		},
	})
}

// statusForError maps domain errors onto HTTP status codes. Unknown errors
// are 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidFarm):
		return http.StatusBadRequest
	case errors.Is(err, farm.ErrFarmNotFound), errors.Is(err, weatherrecord.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, providers.ErrLocationNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, providers.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, providers.ErrConfigurationMissing), errors.Is(err, service.ErrShuttingDown):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondWithServiceError(w http.ResponseWriter, err error, message string) {
	respondWithError(w, statusForError(err), message+": "+err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func farmIDFromPath(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("farm id must be a positive integer")
	}
	return uint(id), nil
}
