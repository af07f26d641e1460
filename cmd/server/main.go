package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"weddingfolio/internal/auth"
	"weddingfolio/internal/capabilities"
	"weddingfolio/internal/config"
	"weddingfolio/internal/handler"
	"weddingfolio/internal/middleware"
	"weddingfolio/internal/repository/postgres"
	serviceAuth "weddingfolio/internal/service/auth"
	"weddingfolio/internal/service/portfolio"
	"weddingfolio/internal/service/vision"
	"weddingfolio/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to create schema: %v", err)
		}
		logger.Info("schema ensured", "tables", tables.All())
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	weddingRepo := postgres.NewWeddingRepository(repoConfig)
	mediaRepo := postgres.NewMediaRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Blob storage
	blobs, err := storage.NewMinioBlobStore(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}
	if err := blobs.EnsureBucket(ctx); err != nil {
		log.Fatalf("Failed to prepare bucket: %v", err)
	}

	// Vision model catalog
	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize capability registry: %v", err)
	}
	if err := capabilityRegistry.CheckClassifier(cfg.VisionProvider, cfg.VisionModel); err != nil {
		logger.Warn("configured vision model may not classify photos",
			"provider", cfg.VisionProvider,
			"model", cfg.VisionModel,
			"reason", err,
		)
	}
	if !cfg.VisionEnabled() {
		logger.Warn("OPENAI_API_KEY not set: uploads will be stored unclassified")
	}

	classifier := vision.NewClassifier(vision.NewChatClient(cfg), cfg.VisionModel, logger)

	// Services
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(weddingRepo, mediaRepo)
	pathResolver := portfolio.NewPathResolver(folderRepo, logger)
	folderService := portfolio.NewFolderService(folderRepo, pathResolver, logger)
	weddingService := portfolio.NewWeddingService(weddingRepo, mediaRepo, blobs, pathResolver, txManager, logger)
	mediaService := portfolio.NewMediaService(mediaRepo, weddingRepo, blobs, classifier, authorizer,
		portfolio.BatchOptions{
			Concurrency: cfg.ClassifyConcurrency,
			RatePerSec:  cfg.ClassifyRatePerSec,
		},
		logger,
	)

	// Handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	weddingHandler := handler.NewWeddingHandler(weddingService, logger)
	mediaHandler := handler.NewMediaHandler(mediaService, logger)
	modelsHandler := handler.NewVisionModelsHandler(cfg, logger, capabilityRegistry)

	logger.Info("services initialized")

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Folders
	mux.HandleFunc("POST /api/folders/ensure", folderHandler.EnsurePath)
	mux.HandleFunc("GET /api/folders", folderHandler.ListRoot)
	mux.HandleFunc("GET /api/folders/tree", folderHandler.GetTree) // Must come before {id} route
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("GET /api/folders/{id}/children", folderHandler.ListChildren)

	// Weddings
	mux.HandleFunc("POST /api/weddings", weddingHandler.CreateWedding)
	mux.HandleFunc("GET /api/weddings", weddingHandler.ListWeddings)
	mux.HandleFunc("GET /api/weddings/{id}", weddingHandler.GetWedding)
	mux.HandleFunc("PATCH /api/weddings/{id}", weddingHandler.UpdateWedding)
	mux.HandleFunc("DELETE /api/weddings/{id}", weddingHandler.DeleteWedding)
	mux.HandleFunc("POST /api/weddings/{id}/media", mediaHandler.UploadMedia)
	mux.HandleFunc("GET /api/weddings/{id}/media", mediaHandler.ListMedia)
	mux.HandleFunc("POST /api/weddings/{id}/reclassify", mediaHandler.ReclassifyWedding)

	// Media
	mux.HandleFunc("GET /api/media/{id}", mediaHandler.GetMedia)
	mux.HandleFunc("DELETE /api/media/{id}", mediaHandler.DeleteMedia)
	mux.HandleFunc("POST /api/media/{id}/reclassify", mediaHandler.ReclassifyMedia)
	mux.HandleFunc("GET /api/media/{id}/publication", mediaHandler.CheckPublication)

	// Vision model catalog
	mux.HandleFunc("GET /api/vision/models", modelsHandler.ListModels)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.Auth(jwtVerifier, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be outermost to answer OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     h,
		ReadTimeout: 60 * time.Second, // uploads up to MaxMediaUploadBytes
		// Batch reclassification holds the connection while it runs
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
