package handlers

import (
	"net/http"

	"github.com/tripscout/tripscout/backend/internal/application/services"
)

// PositionHandler exposes the searcher's resolved position
type PositionHandler struct {
	service *services.TripSearchService
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(service *services.TripSearchService) *PositionHandler {
	return &PositionHandler{service: service}
}

// GetPosition handles GET /api/position
func (h *PositionHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	coords := h.service.CurrentPosition()
	if coords == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondWithJSON(w, http.StatusOK, coords)
}
