package routes

import (
	"net/http"

	"github.com/voyageai/recommender-backend/internal/api/handlers"
	"github.com/voyageai/recommender-backend/internal/api/middleware"
	"github.com/voyageai/recommender-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	recommendationHandler *handlers.RecommendationHandler
	attractionHandler     *handlers.AttractionHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	recommendationHandler *handlers.RecommendationHandler,
	attractionHandler *handlers.AttractionHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		recommendationHandler: recommendationHandler,
		attractionHandler:     attractionHandler,
		cacheMiddleware:       cacheMiddleware,
		metrics:               metrics,
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

	// User endpoints
	r.mux.HandleFunc("GET /api/users", r.recommendationHandler.ListUsers)
	r.mux.HandleFunc("GET /api/users/{id}/stats", r.recommendationHandler.GetUserStats)
	r.mux.HandleFunc("GET /api/users/{id}/recommendations", r.recommendationHandler.GetRecommendations)

	// Attraction catalog endpoint
	r.mux.HandleFunc("GET /api/attractions", r.attractionHandler.ListAttractions)

	// Admin endpoints
	r.mux.HandleFunc("POST /api/admin/snapshot/refresh", r.recommendationHandler.RefreshSnapshot)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
