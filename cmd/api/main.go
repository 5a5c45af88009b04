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

	"github.com/havenlink/communitymatch/internal/adapters/cache"
	"github.com/havenlink/communitymatch/internal/adapters/database"
	"github.com/havenlink/communitymatch/internal/adapters/events"
	"github.com/havenlink/communitymatch/internal/adapters/search"
	"github.com/havenlink/communitymatch/internal/api/handlers"
	"github.com/havenlink/communitymatch/internal/api/middleware"
	"github.com/havenlink/communitymatch/internal/api/routes"
	"github.com/havenlink/communitymatch/internal/application/services"
	"github.com/havenlink/communitymatch/internal/domain/providers"
	"github.com/havenlink/communitymatch/internal/domain/repositories"
	"github.com/havenlink/communitymatch/internal/infrastructure/clients/postgres"
	"github.com/havenlink/communitymatch/internal/infrastructure/clients/redis"
	"github.com/havenlink/communitymatch/internal/infrastructure/clients/typesense"
	"github.com/havenlink/communitymatch/internal/infrastructure/observability"
	"github.com/havenlink/communitymatch/pkg/config"
)

func main() {

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)

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

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters

	// Create base resource adapter
	baseResourceAdapter := database.NewResourceAdapter(pgClient)

	// Wrap with caching if Redis is available (for read performance optimization)
	var resourceAdapter repositories.ResourceRepository
	if cacheProvider != nil {
		resourceAdapter = database.NewCachedResourceAdapter(baseResourceAdapter, cacheProvider)
		log.Println("Resource adapter wrapped with caching layer")
	} else {
		resourceAdapter = baseResourceAdapter
		log.Println("Resource adapter running without cache (Redis unavailable)")
	}

	constraintAdapter := database.NewConstraintAdapter(pgClient)
	assessmentAdapter := database.NewAssessmentAdapter(pgClient)
	recommendationAdapter := database.NewRecommendationAdapter(pgClient)

	var searchRepo repositories.ResourceSearchRepository

	if typesenseClient != nil {

		adapter := search.NewTypesenseAdapter(typesenseClient)

		// Ensure schema exists

		if err := adapter.InitSchema(context.Background()); err != nil {

			log.Printf("Warning: Failed to init Typesense schema: %v", err)

		}

		searchRepo = adapter

	}

	// Initialize services

	resourceService := services.NewResourceService(resourceAdapter, searchRepo)

	matchingService := services.NewMatchingService()

	recommendationService := services.NewRecommendationService(
		resourceAdapter,
		constraintAdapter,
		assessmentAdapter,
		recommendationAdapter,
		matchingService,
	)
	recommendationService.SetCatalogPageSize(cfg.Matching.CatalogPageSize)

	// Set event bus for real-time updates
	if eventBus != nil {
		recommendationService.SetEventBus(eventBus)
		log.Println("Event bus configured for recommendation service")
	}

	// Initialize handlers

	resourceHandler := handlers.NewResourceHandler(resourceService)

	intakeHandler := handlers.NewIntakeHandler(constraintAdapter)

	assessmentHandler := handlers.NewAssessmentHandler(assessmentAdapter)

	matchHandler := handlers.NewMatchHandler(recommendationService, metrics)
	matchHandler.SetDefaultLimit(cfg.Matching.DefaultLimit)

	responseHandler := handlers.NewResponseHandler(recommendationService)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Response recording is the one write path patients hit directly,
	// so it gets its own limiter.
	responseLimiter := middleware.NewRateLimiter(10, 20)

	// Set up router

	router := routes.NewRouter(
		resourceHandler,
		intakeHandler,
		assessmentHandler,
		matchHandler,
		responseHandler,
		sseHandler,
		cacheMiddleware,
		responseLimiter,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
