// Package main is the entry point for the dividend calculator HTTP service.
// It serves the three dividend discount models over a JSON/msgpack API and a
// live websocket.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/dividend-calculator/internal/config"
	"github.com/aristath/dividend-calculator/internal/modules/valuation"
	"github.com/aristath/dividend-calculator/internal/modules/valuation/workers"
	"github.com/aristath/dividend-calculator/internal/server"
	"github.com/aristath/dividend-calculator/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "dividend-calculator",
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Int("workers", cfg.Workers).
		Int("default_horizon", cfg.DefaultHorizon).
		Str("currency_style", string(cfg.Currency())).
		Msg("Starting dividend calculator")

	pool := workers.NewWorkerPool(cfg.Workers)
	valuationService := valuation.NewService(cfg.DefaultHorizon, pool, log)

	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Valuation: valuationService,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// In-flight requests get up to 10 seconds to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
