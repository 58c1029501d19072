package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voyageai/recommender-backend/internal/adapters/cache"
	"github.com/voyageai/recommender-backend/internal/adapters/database"
	"github.com/voyageai/recommender-backend/internal/api/handlers"
	"github.com/voyageai/recommender-backend/internal/api/middleware"
	"github.com/voyageai/recommender-backend/internal/api/routes"
	"github.com/voyageai/recommender-backend/internal/application/services"
	"github.com/voyageai/recommender-backend/internal/domain/providers"
	"github.com/voyageai/recommender-backend/internal/infrastructure/clients/modelserver"
	"github.com/voyageai/recommender-backend/internal/infrastructure/clients/postgres"
	"github.com/voyageai/recommender-backend/internal/infrastructure/clients/redis"
	"github.com/voyageai/recommender-backend/internal/infrastructure/clients/sqlite"
	"github.com/voyageai/recommender-backend/internal/infrastructure/observability"
	"github.com/voyageai/recommender-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env, cfg.LogLevel)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize the historical data source
	var db *sql.DB
	var closeDB func() error
	switch cfg.Database.Driver {
	case "postgres":
		client, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		db = client.DB()
		closeDB = client.Close
	default:
		client, err := sqlite.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize SQLite client")
		}
		db = client.DB()
		closeDB = client.Close
	}
	defer closeDB()
	log.Info().Str("driver", cfg.Database.Driver).Msg("Database client initialized successfully")

	// Initialize Redis client. The application works without caching.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized successfully")
	}

	// Initialize the model server client and the training feature schema
	modelClient := modelserver.NewClient(cfg.Model.ServerURL)
	schema, err := modelserver.LoadSchema(cfg.Model.SchemaPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Model.SchemaPath).Msg("Failed to load feature schema")
	}
	if err := modelClient.Health(ctx); err != nil {
		log.Warn().Err(err).Msg("Model server health check failed, scoring will error until it recovers")
	}

	// Initialize adapters
	dialect := database.Dialect(cfg.Database.Driver)
	visitAdapter := database.NewVisitAdapter(db, dialect)
	attractionAdapter := database.NewAttractionAdapter(db, dialect)

	// Initialize services
	snapshotService := services.NewSnapshotService(visitAdapter, attractionAdapter, metrics)
	if err := snapshotService.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to build the initial snapshot")
	}

	recommendationService := services.NewRecommendationService(
		snapshotService,
		services.NewFeatureService(),
		services.NewScoringService(modelClient, metrics),
		schema,
	)

	// Initialize handlers
	recommendationHandler := handlers.NewRecommendationHandler(
		recommendationService,
		cfg.Recommendations.DefaultTopK,
		cfg.Recommendations.MaxTopK,
	)
	attractionHandler := handlers.NewAttractionHandler(recommendationService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Info().Msg("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		recommendationHandler,
		attractionHandler,
		cacheMiddleware,
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
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
