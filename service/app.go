package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"postsapi/app/config"
	"postsapi/app/repositories"
	"postsapi/app/routes"
)

// OpenStore opens the datastore selected by cfg.
func OpenStore(cfg *config.Config, logger *slog.Logger) (*repositories.Store, error) {
	return repositories.Open(repositories.Options{
		Driver:     cfg.StoreDriver,
		BadgerPath: cfg.DBPath,
		SQLiteDSN:  cfg.SQLiteDSN,
		Logger:     logger,
	})
}

// NewServer builds the HTTP server for the posts API.
func NewServer(cfg *config.Config, store *repositories.Store, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr: cfg.Addr(),
		Handler: routes.SetupRoutes(store, logger, routes.Options{
			MaxBodyBytes: cfg.MaxBodyBytes,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

// RunAppServer opens the store and serves the API until ctx is cancelled.
func RunAppServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := OpenStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close store", slog.String("error", err.Error()))
		}
	}()

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr(), err)
	}

	logger.Info("starting posts api",
		slog.String("addr", ln.Addr().String()),
		slog.String("store", store.Driver),
		slog.String("env", cfg.Env),
	)
	return Serve(ctx, NewServer(cfg, store, logger), ln, cfg.ShutdownTimeout, logger)
}

// Serve runs srv on ln until ctx is done, then shuts it down gracefully,
// waiting at most timeout for in-flight requests.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", timeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}
