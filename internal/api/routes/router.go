package routes

import (
	"net/http"

	"github.com/tripscout/tripscout/backend/internal/api/handlers"
	"github.com/tripscout/tripscout/backend/internal/api/middleware"
	"github.com/tripscout/tripscout/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	tripSearchHandler *handlers.TripSearchHandler
	positionHandler   *handlers.PositionHandler
	sseHandler        *handlers.SSEHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	tripSearchHandler *handlers.TripSearchHandler,
	positionHandler *handlers.PositionHandler,
	sseHandler *handlers.SSEHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		tripSearchHandler: tripSearchHandler,
		positionHandler:   positionHandler,
		sseHandler:        sseHandler,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Trip search endpoints
	r.mux.HandleFunc("POST /api/trips/search", r.tripSearchHandler.SubmitSearch)
	r.mux.HandleFunc("GET /api/trips/search/current", r.tripSearchHandler.GetCurrentSearch)

	// Search lifecycle stream
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/trips/search/events", r.sseHandler.StreamSearchUpdates)
	}

	// Position endpoint
	r.mux.HandleFunc("GET /api/position", r.positionHandler.GetPosition)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
