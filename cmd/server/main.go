package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"stockmentor/internal/api"
	"stockmentor/internal/config"
	"stockmentor/internal/logging"
	"stockmentor/pkg/stockmentor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	logger, writer, err := logging.NewLogger(cfg.LogDir(), slog.LevelInfo)
	if err != nil {
		slog.Error("failed to initialize logger", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("failed to close log writer", "err", err)
		}
	}()

	if cfg.MarketAPIKey == "" {
		logger.Warn("TIINGO_API_KEY is not set; market data requests will fail")
	}

	core, err := stockmentor.OpenWithOptions(stockmentor.Options{
		DBPath:        cfg.DBPath,
		Logger:        logger,
		MarketBaseURL: cfg.MarketBaseURL,
		MarketAPIKey:  cfg.MarketAPIKey,
		HTTPTimeout:   cfg.HTTPTimeout,
		Generator: stockmentor.GeneratorConfig{
			Provider: cfg.AIProvider,
			APIKey:   cfg.AIAPIKey,
			Model:    cfg.AIModel,
			BaseURL:  cfg.AIBaseURL,
		},
	})
	if err != nil {
		logger.Error("failed to initialize core", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := core.Close(); err != nil {
			logger.Error("failed to close core", "err", err)
		}
	}()

	handler := api.NewRouter(core, api.Options{
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})
	handler = middleware.Compress(5)(handler)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server starting", "addr", cfg.Addr(), "ai_provider", cfg.AIProvider)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	<-stop

	logger.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}
}
