package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	appLogger "github.com/FACorreiaa/go-travel-consultant/app/logger"
	"github.com/FACorreiaa/go-travel-consultant/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-consultant/app/tracer"
	"github.com/FACorreiaa/go-travel-consultant/config"
	"github.com/FACorreiaa/go-travel-consultant/internal/container"
	"github.com/FACorreiaa/go-travel-consultant/internal/router"
)

const (
	serviceName    = "travel-consultant"
	serviceVersion = "1.0.0"
)

// @title          Travel Consultant API
// @version        1.0
// @description    Itinerary generation backed by geocoding, attractions, weather, photos and an LLM.
// @BasePath       /
func main() {
	// --- Initial Loading ---
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	// --- Logger Setup ---
	logger := appLogger.New(cfg.Mode, os.Stdout)
	slog.SetDefault(logger) // Set globally after initialization

	// --- Application Context & Shutdown ---
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Telemetry ---
	telemetry, err := tracer.InitTracingAndMetrics(serviceName, serviceVersion)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	// --- Dependency Injection ---
	c, err := container.NewContainer(ctx, &cfg, logger, metrics.Get())
	if err != nil {
		logger.Error("Failed to build dependencies", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	mainRouter := router.SetupRouter(c.RouterConfig(telemetry.MetricsHandler()))

	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	if cfg.Server.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.Timeout))
	}
	r.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError), // Pipe server errors to slog
	}

	// --- Start Server Goroutine ---
	go func() {
		logger.Info("Starting HTTP server",
			slog.String("address", serverAddress),
			slog.String("mode", cfg.Mode),
			slog.String("llm_model", c.Generator.Model()))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel() // Trigger shutdown if server fails unexpectedly
		}
	}()

	// --- Wait for Shutdown Signal ---
	<-ctx.Done()

	// --- Graceful Shutdown ---
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("Telemetry shutdown failed", slog.Any("error", err))
	}

	logger.Info("Application shut down complete.")
}
