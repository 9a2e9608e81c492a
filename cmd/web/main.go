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

	"adoptme-web/internal/adapters/backend"
	"adoptme-web/internal/adapters/session/memory"
	pgsession "adoptme-web/internal/adapters/session/postgres"
	redissession "adoptme-web/internal/adapters/session/redis"
	"adoptme-web/internal/config"
	"adoptme-web/internal/platform/logger"
	"adoptme-web/internal/ports/session"
	"adoptme-web/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer syncLogger(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", map[string]any{"error": err})
		syncLogger(log)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := backend.NewClient(backend.Config{
		BaseURL:   cfg.APIBaseURL,
		PublicURL: cfg.APIPublic,
		Mode:      backend.AuthMode(cfg.AuthMode),
		Timeout:   cfg.APITimeout,
	}, store)
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Backend:          client,
			Logger:           log,
			RecommendationsN: cfg.RecommendationsN,
			SessionTTL:       cfg.SessionTTL,
			CookieSecure:     cfg.CookieSecure,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":          srv.Addr,
			"api":           cfg.APIBaseURL,
			"auth_mode":     string(cfg.AuthMode),
			"session_store": string(cfg.SessionStore),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore elige el adapter de sesiones según SESSION_STORE.
func openStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	noop := func() {}

	switch cfg.SessionStore {
	case config.StorePostgres:
		db, err := pgsession.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres: %w", err)
		}
		initCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pgsession.EnsureSchema(initCtx, db); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("postgres schema: %w", err)
		}
		return pgsession.NewStore(db, cfg.SessionTTL), func() { _ = db.Close() }, nil

	case config.StoreRedis:
		rc, err := redissession.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return redissession.NewStore(rc, cfg.SessionTTL), func() { _ = rc.Close() }, nil

	default:
		return memory.NewStore(cfg.SessionTTL), noop, nil
	}
}

func syncLogger(log logger.Logger) {
	if s, ok := log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
