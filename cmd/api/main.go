package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch-console/internal/app"
	"dispatch-console/internal/core/config"
	"dispatch-console/internal/core/logger"
	"dispatch-console/internal/core/server"
	dispatchhandler "dispatch-console/internal/features/dispatch/handler"
	postalhandler "dispatch-console/internal/features/postal/handler"
	sessionhandler "dispatch-console/internal/features/session/handler"

	"go.uber.org/zap"
)

// @title Dispatch Console API
// @version 1.0
// @description Delivery dispatch console: synchronized delivery list, single-panel editing and courier dispatch.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to wire application", zap.Error(err))
	}
	defer a.Close()

	srv := server.New(cfg, a.Metrics)

	// Register Routes
	sessionhandler.NewSessionHandler(a.Session).RegisterRoutes(srv.App)
	dispatchhandler.NewDispatchHandler(a.Consoles).RegisterRoutes(srv.App)
	postalhandler.NewPostalHandler(a.Postal).RegisterRoutes(srv.App)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Error("Server failed", zap.Error(err))
		}
	case <-ctx.Done():
		l.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}
}
