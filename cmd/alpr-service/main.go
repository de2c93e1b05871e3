package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alpr-service/internal/auth"
	"alpr-service/internal/config"
	"alpr-service/internal/db"
	httphandler "alpr-service/internal/http"
	"alpr-service/internal/http/middleware"
	"alpr-service/internal/logger"
	"alpr-service/internal/plate"
	"alpr-service/internal/repository"
	"alpr-service/internal/service"
	"alpr-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	registryRepo := repository.NewRegistryRepository(database)
	eventRepo := repository.NewEventRepository(database)

	registryService := service.NewRegistryService(registryRepo, appLogger)
	if err := registryService.Load(context.Background()); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to load registry index")
	}

	family := plate.FamilyCategory
	if cfg.Plate.GrammarFamily == "uniform" {
		family = plate.FamilyUniform
	}
	recognitionService := service.NewRecognitionService(eventRepo, registryService, family, appLogger)

	// Snapshot storage is optional, the service runs without it.
	snapshots, err := storage.NewSnapshotStoreFromEnv()
	if err != nil && !errors.Is(err, storage.ErrNotConfigured) {
		appLogger.Fatal().Err(err).Msg("failed to initialize snapshot storage")
	}
	if err != nil {
		appLogger.Warn().Msg("snapshot storage not configured, snapshot uploads will be disabled")
	}

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(recognitionService, registryService, cfg, appLogger, snapshots)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, database)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().
		Str("addr", addr).
		Str("grammar_family", cfg.Plate.GrammarFamily).
		Msg("starting ALPR service")

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error().Err(err).Msg("failed to start server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server exited")
}
