package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"ulascansenturk/farm-records/internal/service"
)

type FarmHandler struct {
	farmService service.FarmService
	timeout     time.Duration
}

func NewFarmHandler(farmService service.FarmService, timeout time.Duration) *FarmHandler {
	return &FarmHandler{
		farmService: farmService,
		timeout:     timeout,
	}
}

func (h *FarmHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /farms", h.ListFarms)
	mux.HandleFunc("POST /farms", h.CreateFarm)
	mux.HandleFunc("GET /farms/{id}", h.GetFarm)
	mux.HandleFunc("DELETE /farms/{id}", h.DeleteFarm)
}

func (h *FarmHandler) CreateFarm(w http.ResponseWriter, r *http.Request) {
	var req service.CreateFarmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	f, err := h.farmService.CreateFarm(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create farm")
		respondWithServiceError(w, err, "failed to create farm")
		return
	}

	respondWithJSON(w, http.StatusCreated, newFarmResponse(*f))
}

func (h *FarmHandler) ListFarms(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	farms, err := h.farmService.ListFarms(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list farms")
		respondWithServiceError(w, err, "failed to list farms")
		return
	}

	resp := make([]FarmResponse, 0, len(farms))
	for _, f := range farms {
		resp = append(resp, newFarmResponse(f))
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (h *FarmHandler) GetFarm(w http.ResponseWriter, r *http.Request) {
	id, err := farmIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	f, err := h.farmService.GetFarm(ctx, id)
	if err != nil {
		respondWithServiceError(w, err, "failed to get farm")
		return
	}

	respondWithJSON(w, http.StatusOK, newFarmResponse(*f))
}

func (h *FarmHandler) DeleteFarm(w http.ResponseWriter, r *http.Request) {
	id, err := farmIDFromPath(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.farmService.DeleteFarm(ctx, id); err != nil {
		log.Error().Err(err).Uint("farm_id", id).Msg("failed to delete farm")
		respondWithServiceError(w, err, "failed to delete farm")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
