package routes

import (
	"net/http"

	"github.com/havenlink/communitymatch/internal/api/handlers"
	"github.com/havenlink/communitymatch/internal/api/middleware"
	"github.com/havenlink/communitymatch/internal/infrastructure/observability"
)

// Router holds all route handlers.
type Router struct {
	mux *http.ServeMux

	resourceHandler   *handlers.ResourceHandler
	intakeHandler     *handlers.IntakeHandler
	assessmentHandler *handlers.AssessmentHandler
	matchHandler      *handlers.MatchHandler
	responseHandler   *handlers.ResponseHandler
	sseHandler        *handlers.SSEHandler

	cacheMiddleware *middleware.CacheMiddleware
	responseLimiter *middleware.RateLimiter
	metrics         *observability.Metrics
}

// NewRouter creates a new router.
func NewRouter(
	resourceHandler *handlers.ResourceHandler,
	intakeHandler *handlers.IntakeHandler,
	assessmentHandler *handlers.AssessmentHandler,
	matchHandler *handlers.MatchHandler,
	responseHandler *handlers.ResponseHandler,
	sseHandler *handlers.SSEHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	responseLimiter *middleware.RateLimiter,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:               http.NewServeMux(),
		resourceHandler:   resourceHandler,
		intakeHandler:     intakeHandler,
		assessmentHandler: assessmentHandler,
		matchHandler:      matchHandler,
		responseHandler:   responseHandler,
		sseHandler:        sseHandler,
		cacheMiddleware:   cacheMiddleware,
		responseLimiter:   responseLimiter,
		metrics:           metrics,
	}
}

// SetupRoutes configures all application routes.
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Catalog curation endpoints
	r.mux.HandleFunc("GET /api/resources", r.resourceHandler.ListResources)
	r.mux.HandleFunc("POST /api/resources", r.resourceHandler.CreateResource)
	r.mux.HandleFunc("GET /api/resources/search", r.resourceHandler.SearchResources)
	r.mux.HandleFunc("GET /api/resources/{id}", r.resourceHandler.GetResource)
	r.mux.HandleFunc("PUT /api/resources/{id}", r.resourceHandler.UpdateResource)
	r.mux.HandleFunc("DELETE /api/resources/{id}", r.resourceHandler.DeleteResource)

	// Intake endpoints
	r.mux.HandleFunc("POST /api/patients/{id}/constraints", r.intakeHandler.CreateConstraints)
	r.mux.HandleFunc("GET /api/patients/{id}/constraints", r.intakeHandler.GetLatestConstraints)
	r.mux.HandleFunc("POST /api/patients/{id}/assessments", r.assessmentHandler.CreateAssessment)
	r.mux.HandleFunc("GET /api/patients/{id}/assessments", r.assessmentHandler.GetLatestAssessment)

	// Matching endpoints
	r.mux.HandleFunc("POST /api/patients/{id}/matches", r.matchHandler.GenerateMatches)
	r.mux.HandleFunc("GET /api/patients/{id}/matches", r.matchHandler.GetMatches)

	// Patient response endpoint, rate limited per instance
	recordResponse := http.Handler(http.HandlerFunc(r.responseHandler.RecordResponse))
	if r.responseLimiter != nil {
		recordResponse = middleware.RateLimitMiddleware(r.responseLimiter, recordResponse)
	}
	r.mux.Handle("POST /api/recommendations/{id}/response", recordResponse)

	// Real-time recommendation stream, only when the event bus is up
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/patients/{id}", r.sseHandler.StreamPatientUpdates)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
