// Command server runs the user API.
//
// All wiring happens here by explicit construction: the store, the guard,
// the handlers and the dispatch table are built once at startup and handed
// to the pipeline executor, which the chi router mounts under the
// configured base prefix.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/user-api/internal/api"
	"github.com/phrazzld/user-api/internal/api/middleware"
	"github.com/phrazzld/user-api/internal/config"
	"github.com/phrazzld/user-api/internal/domain"
	"github.com/phrazzld/user-api/internal/guard"
	"github.com/phrazzld/user-api/internal/pipeline"
	"github.com/phrazzld/user-api/internal/platform/logger"
	"github.com/phrazzld/user-api/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Setup(cfg.Server)

	userStore := store.NewMemoryUserStore()
	if err := userStore.Seed(seedUsers()...); err != nil {
		return fmt.Errorf("failed to seed user store: %w", err)
	}

	authGuard, err := buildAuthGuard(cfg.Auth, log)
	if err != nil {
		return err
	}

	handler := api.NewUserHandler(userStore, log)
	executor := pipeline.NewExecutor(api.Routes(handler, authGuard), log)
	router := newRouter(cfg.Server.BasePrefix, executor, log)

	return startHTTPServer(context.Background(), cfg.Server.Port, router, log)
}

// seedUsers is the initial demo collection; IDs start at 1 so the first
// created user gets ID 4.
func seedUsers() []domain.User {
	return []domain.User{
		{ID: 1, Name: "Alice Zhang", Email: "alice@example.com"},
		{ID: 2, Name: "Bob Lee", Email: "bob@example.com"},
		{ID: 3, Name: "Carol Wang", Email: "carol@example.com"},
	}
}

// buildAuthGuard picks the guard implementation from configuration.
func buildAuthGuard(cfg config.AuthConfig, log *slog.Logger) (pipeline.Guard, error) {
	switch cfg.Mode {
	case "sentinel":
		return guard.NewBearerTokenGuard(log), nil
	case "jwt":
		return guard.NewJWTGuard([]byte(cfg.JWTSecret), log), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// newRouter assembles the chi router: standard middleware, a health check,
// and the pipeline executor mounted at the base prefix.
func newRouter(basePrefix string, executor *pipeline.Executor, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})

	r.Handle(basePrefix+"/*", http.StripPrefix(basePrefix, executor))
	return r
}

// startHTTPServer runs the server until SIGINT/SIGTERM, then shuts down
// gracefully.
func startHTTPServer(ctx context.Context, port int, router http.Handler, log *slog.Logger) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown signal received")
	case <-serverCtx.Done():
		log.Info("server context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("server shutdown completed")
	return nil
}
