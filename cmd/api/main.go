package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tripscout/tripscout/backend/internal/adapters/events"
	"github.com/tripscout/tripscout/backend/internal/adapters/providers/position"
	"github.com/tripscout/tripscout/backend/internal/api/handlers"
	"github.com/tripscout/tripscout/backend/internal/api/routes"
	"github.com/tripscout/tripscout/backend/internal/application/services"
	"github.com/tripscout/tripscout/backend/internal/domain/providers"
	"github.com/tripscout/tripscout/backend/internal/infrastructure/clients/gemini"
	"github.com/tripscout/tripscout/backend/internal/infrastructure/clients/redis"
	"github.com/tripscout/tripscout/backend/internal/infrastructure/observability"
	"github.com/tripscout/tripscout/backend/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - searches still work, only the event stream is lost
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize event bus for search lifecycle events
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize position provider
	var positionProvider providers.PositionProvider
	switch cfg.Position.Provider {
	case "google":
		if cfg.Position.APIKey == "" {
			log.Println("Warning: POSITION_API_KEY is not set; using static position provider")
			positionProvider = position.NewStaticPositionProvider(cfg.Position.Latitude, cfg.Position.Longitude)
		} else {
			positionProvider = position.NewGooglePositionProvider(cfg.Position.APIKey)
		}
	default:
		positionProvider = position.NewStaticPositionProvider(cfg.Position.Latitude, cfg.Position.Longitude)
	}

	// Initialize the grounded generation client. The genai client itself is
	// created lazily, so a missing API key surfaces on the first search.
	itineraryGenerator := gemini.NewClient(&cfg.Gemini)

	// Initialize services

	tripSearchService := services.NewTripSearchService(itineraryGenerator, positionProvider)

	if eventBus != nil {
		tripSearchService.SetEventBus(eventBus)
		log.Println("Event bus configured for trip search service")
	}

	// Resolve the searcher position once at startup; failure just means
	// searches run without a location bias.
	go tripSearchService.WarmPosition(ctx)

	// Initialize handlers

	tripSearchHandler := handlers.NewTripSearchHandler(tripSearchService, cfg.Search)

	positionHandler := handlers.NewPositionHandler(tripSearchService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	// Set up router

	router := routes.NewRouter(
		tripSearchHandler,
		positionHandler,
		sseHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
