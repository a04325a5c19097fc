package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/phrazzld/tickler/internal/app"
)

// server owns the HTTP listener for an Application.
type server struct {
	app        *app.Application
	httpServer *http.Server
}

func newServer(a *app.Application) *server {
	return &server{
		app: a,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", a.Config.Server.Port),
			Handler:           setupRouter(a),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (s *server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.app.Logger.Info("Starting server", "port", s.app.Config.Server.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.app.Logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.app.Config.Server.ShutdownTimeout())
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.app.Logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.app.Logger.Info("Server shutdown completed")
	return nil
}
