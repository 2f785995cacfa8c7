package main

import (
	"alcyxob/fitcoach/internal/api"
	"alcyxob/fitcoach/internal/catalog"
	"alcyxob/fitcoach/internal/config"
	"alcyxob/fitcoach/internal/logging"
	"alcyxob/fitcoach/internal/repository"
	"alcyxob/fitcoach/internal/repository/memory"
	"alcyxob/fitcoach/internal/repository/mongo"
	"alcyxob/fitcoach/internal/service"
	"alcyxob/fitcoach/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Fitness Coach API
// @version 1.0
// @description Onboarding wizard, personalized plans and dashboard of a single-user fitness coach.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	// --- Logging ---
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting fitness coach server", zap.String("store", cfg.Store.Driver), zap.Bool("photos", cfg.S3.Enabled()))

	ctx := context.Background()

	// Fail on a broken catalog before accepting traffic.
	cat := catalog.Default()

	// --- Session Store ---
	sessionRepo, closeStore, err := openSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("could not open session store", zap.Error(err))
	}
	defer closeStore()

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, logger)
		if err != nil {
			logger.Fatal("failed to initialize S3 storage", zap.Error(err))
		}
		if cfg.S3.PhotoRetentionDays > 0 {
			// Photos of sessions that expire without a logout.
			if err := s3Storage.EnsureSessionPhotoExpiry(ctx, cfg.S3.PhotoRetentionDays); err != nil {
				logger.Warn("could not install photo lifecycle rule", zap.Error(err))
			}
		}
		fileStorage = s3Storage
	} else {
		logger.Info("no bucket configured, progress photos disabled")
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(sessionRepo, fileStorage, cfg.JWT.Secret, cfg.JWT.Expiration, logger)
	onboardingService := service.NewOnboardingService(sessionRepo, cat, logger)
	dashboardService := service.NewDashboardService(sessionRepo, fileStorage, cfg.S3.PresignExpiry, cat, logger)

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(logger), api.Metrics())

	// --- Setup Routes ---
	api.SetupRoutes(router, authService, onboardingService, dashboardService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful Shutdown ---
	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ListenAndServe error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exiting")
}

// openSessionStore builds the configured session repository and returns a
// function releasing its resources.
func openSessionStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (repository.SessionRepository, func(), error) {
	if cfg.Store.Driver != config.StoreMongo {
		logger.Info("sessions kept in memory")
		return memory.NewSessionRepository(), func() {}, nil
	}

	client, err := mongo.ConnectDB(ctx, cfg.Database.URI, cfg.Database.ConnectTimeout)
	if err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.Database.Name)

	indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := mongo.EnsureSessionIndexes(indexCtx, db.Collection(mongo.SessionCollectionName)); err != nil {
		// Sessions still work; expired ones are filtered on read.
		logger.Warn("could not ensure session TTL index", zap.Error(err))
	}

	logger.Info("sessions kept in mongo", zap.String("database", cfg.Database.Name))
	closeFn := func() {
		logger.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(client); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}
	return mongo.NewMongoSessionRepository(db), closeFn, nil
}
