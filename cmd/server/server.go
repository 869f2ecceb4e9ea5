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
)

// startHTTPServer serves router until a shutdown signal, ctx cancellation or
// a listener failure, then drains in-flight requests within the configured
// shutdown timeout and releases application resources.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	// Configure and create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Canceled by the caller or by a listener failure
	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	// Set up graceful shutdown with signal handling
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	// Start server in a goroutine to allow for graceful shutdown
	listenErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", "error", err)
			listenErr <- err
			cancelServer() // Signal the server context to cancel
		}
	}()

	// Wait for shutdown signal or context cancellation
	select {
	case sig := <-shutdownCh:
		app.logger.Info("Shutting down server...", "signal", sig.String())
	case <-serverCtx.Done():
		app.logger.Info("Server context canceled, shutting down...")
	}

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout())
	defer shutdownCancel()

	// Attempt graceful shutdown, then release the database pool
	shutdownErr := server.Shutdown(shutdownCtx)
	app.cleanup()

	// A listener failure outranks a shutdown error
	select {
	case err := <-listenErr:
		return fmt.Errorf("listen failed: %w", err)
	default:
	}
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown failed: %w", shutdownErr)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}
