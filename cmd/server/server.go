package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// readHeaderTimeout guards against slow-header clients.
const readHeaderTimeout = 10 * time.Second

// startHTTPServer serves router until ctx is cancelled or the listener fails,
// then shuts down the server, the scheduler and the connections in that order.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Info("Shutting down server...")
	case err := <-serverErr:
		if err != nil {
			app.logger.Error("Server failed", "error", err)
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	return errors.Join(runErr, app.shutdown(server))
}

// shutdown drains in-flight requests, waits for a running report job and
// releases connections, all within the configured shutdown timeout.
func (app *application) shutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout())
	defer cancel()

	var err error
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		app.logger.Error("Server shutdown failed", "error", shutdownErr)
		err = fmt.Errorf("server shutdown failed: %w", shutdownErr)
	}

	app.stopScheduler(shutdownCtx)
	app.cleanup()

	app.logger.Info("Server shutdown completed")
	return err
}
