package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"idsync/internal/auth/google"
	"idsync/internal/config"
	"idsync/internal/handler"
	"idsync/internal/httpgateway"
	"idsync/internal/logger"
	"idsync/internal/port"
	"idsync/internal/repository/postgres"
	"idsync/internal/repository/sqlite"
	"idsync/internal/router"
	"idsync/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, closer, err := openUserStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Initialize services
	gateway := httpgateway.NewClient(cfg.Identity)
	provider := google.NewUserinfoClient(cfg.Identity.UserinfoURL, gateway)
	syncSvc := service.NewUserSyncService(userRepo)
	authSvc := service.NewAuthenticationService(provider, syncSvc)

	// Initialize handlers
	userH := handler.NewUserHandler(authSvc)
	healthH := handler.NewHealthHandler(userRepo)

	r := router.Setup(cfg, log, userH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			slog.String("addr", cfg.Server.Port),
			slog.String("store", cfg.Store.Driver),
			slog.String("environment", cfg.Server.Environment))
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// openUserStore connects the configured user store.
func openUserStore(ctx context.Context, cfg *config.Config) (port.UserRepository, io.Closer, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, store, nil
	default:
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return postgres.NewUserRepo(db), db, nil
	}
}
