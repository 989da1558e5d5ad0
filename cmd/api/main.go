package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"homedesign/internal/gallery"
	"homedesign/internal/genclient"
	"homedesign/internal/http/handlers"
	httpapi "homedesign/internal/http/httpapi"
	"homedesign/internal/infra"
	"homedesign/internal/quota"
	"homedesign/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Database is optional: without DATABASE_URL the service runs file-only
	// and design history carries no prompt metadata.
	var sqlRunner infra.SQLExecutor
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		sqlRunner = infra.NewSQLRunner(dbpool, logger)
	} else {
		logger.Warn().Msg("no DATABASE_URL set, design history disabled")
	}

	files, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize file store")
	}

	gate, err := quota.NewFileGate(filepath.Join(cfg.QuotaPath, "free_generations"), cfg.FreeQuotaLimit)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize quota gate")
	}

	client, err := genclient.NewClient(genclient.Options{
		Endpoint:        cfg.ImageGenEndpoint,
		Logger:          &logger,
		GenerateTimeout: cfg.GenerateTimeout,
		EditTimeout:     cfg.EditTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize generation client")
	}

	store, err := gallery.NewStore(gallery.Options{Files: files, SQL: sqlRunner, Logger: &logger})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize gallery store")
	}

	app := &handlers.App{
		Config:       cfg,
		Logger:       logger,
		SQL:          sqlRunner,
		Gallery:      store,
		Client:       client,
		Gate:         gate,
		Entitlements: quota.StaticEntitlements(cfg.EntitlementActive),
	}

	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
