// Package server assembles the HTTP API and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jrschumacher/casting-agency/internal/auth"
	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/db"
	"github.com/jrschumacher/casting-agency/internal/httputil"
	"github.com/jrschumacher/casting-agency/internal/logger"
	"github.com/jrschumacher/casting-agency/internal/middleware"
	"github.com/jrschumacher/casting-agency/internal/repository"
	actors "github.com/jrschumacher/casting-agency/server/actors-handlers"
	dotwellknown "github.com/jrschumacher/casting-agency/server/dot-well-known-handlers"
	health "github.com/jrschumacher/casting-agency/server/health-handlers"
	movies "github.com/jrschumacher/casting-agency/server/movies-handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the complete HTTP handler. Every actor and movie route is
// guarded by authorizer.
func NewRouter(cfg *config.Config, dbService *db.Service, authorizer middleware.Authorizer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteError(w, http.StatusNotFound, "path", req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method", req.Method, "path", req.URL.Path)
	})

	health.RegisterRoutes(r, "", cfg, dbService)
	dotwellknown.RegisterRoutes(r, "/.well-known", cfg)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	repo := repository.NewRepository(dbService)
	guard := middleware.NewPermissionGroup(authorizer)
	actors.RegisterRoutes(r, "/actors", cfg, guard, repo.Actors())
	movies.RegisterRoutes(r, "/movies", cfg, guard, repo.Movies())

	return r
}

// Start opens the database, applies the schema and serves until SIGINT or
// SIGTERM, then shuts down gracefully.
func Start(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbService, err := db.NewService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := dbService.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err := dbService.Migrate(ctx); err != nil {
		return err
	}

	authorizer, err := auth.New(ctx, cfg.AuthConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize authorizer: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, dbService, authorizer),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log := logger.With("addr", srv.Addr)
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", "env", cfg.AppEnv, "issuer", cfg.Issuer())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
