// Package main is the entry point for the travel gateway.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rahalah/travel-gateway/internal/backend"
	"github.com/rahalah/travel-gateway/internal/chat"
	"github.com/rahalah/travel-gateway/internal/config"
	"github.com/rahalah/travel-gateway/internal/handler"
	"github.com/rahalah/travel-gateway/internal/middleware"
	"github.com/rahalah/travel-gateway/internal/session"
	"github.com/rahalah/travel-gateway/pkg/logger"
	"github.com/rahalah/travel-gateway/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting travel gateway", zap.String("backend_url", cfg.BackendURL))

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "travel-gateway", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Backend transport client
	backendClient := backend.NewHTTPClient(cfg.BackendURL, cfg.BackendTimeout, log)

	// Session registry with periodic idle eviction
	registry := session.NewRegistry(cfg.SessionTTL, log)
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepDone:
				return
			case <-ticker.C:
				registry.Sweep()
			}
		}
	}()

	// Turn orchestration; completed turns fan out to SSE subscribers
	broadcaster := chat.NewBroadcaster()
	orchestrator := chat.New(backendClient, log, broadcaster.Publish)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(backendClient)
	sessionHandler := handler.NewSessionHandler(registry, broadcaster, log)
	chatHandler := handler.NewChatHandler(orchestrator, registry, log)
	eventsHandler := handler.NewEventsHandler(registry, broadcaster, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Sample query suggestions
	r.Get("/api/samples", handler.Samples)

	// Session API
	r.Route("/api/sessions", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			r.Use(middleware.Auth(cfg.JWTSecret))
		}
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/", sessionHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", sessionHandler.Get)
			r.Delete("/", sessionHandler.Delete)
			r.Put("/mode", sessionHandler.SwitchMode)
			r.Post("/chat", chatHandler.Send)
			r.Get("/events", eventsHandler.Stream)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	close(sweepDone)

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
