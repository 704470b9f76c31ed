package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tripscout/tripscout/backend/internal/application/services"
	"github.com/tripscout/tripscout/backend/internal/domain/entities"
	"github.com/tripscout/tripscout/backend/pkg/config"
	apperrors "github.com/tripscout/tripscout/backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// TripSearchHandler handles trip search HTTP requests
type TripSearchHandler struct {
	service *services.TripSearchService
	bounds  config.SearchConfig
}

// NewTripSearchHandler creates a new trip search handler
func NewTripSearchHandler(service *services.TripSearchService, bounds config.SearchConfig) *TripSearchHandler {
	return &TripSearchHandler{
		service: service,
		bounds:  bounds,
	}
}

type submitSearchRequest struct {
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	RadiusKm    int    `json:"radius_km"`
}

// SubmitSearch handles POST /api/trips/search
func (h *TripSearchHandler) SubmitSearch(w http.ResponseWriter, r *http.Request) {
	var req submitSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Message)
		return
	}

	searchID, err := h.service.Submit(r.Context(), entities.TripQuery{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		RadiusKm:    req.RadiusKm,
	})
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeConflict {
			respondWithError(w, http.StatusConflict, appErr.Message)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusAccepted, map[string]interface{}{
		"search_id": searchID,
		"phase":     entities.PhaseSearching,
	})
}

// GetCurrentSearch handles GET /api/trips/search/current
func (h *TripSearchHandler) GetCurrentSearch(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *TripSearchHandler) validate(req *submitSearchRequest) *apperrors.AppError {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return apperrors.NewValidationError("start_date must be an ISO 8601 date")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return apperrors.NewValidationError("end_date must be an ISO 8601 date")
	}
	if end.Before(start) {
		return apperrors.NewValidationError("end_date must not precede start_date")
	}
	if req.RadiusKm < h.bounds.MinRadiusKm || req.RadiusKm > h.bounds.MaxRadiusKm {
		return apperrors.NewValidationError("radius_km is out of bounds")
	}
	return nil
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
