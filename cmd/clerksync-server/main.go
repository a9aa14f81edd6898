package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/guillermoBallester/clerksync/internal/adapter/clerkauth"
	"github.com/guillermoBallester/clerksync/internal/adapter/httpserver"
	"github.com/guillermoBallester/clerksync/internal/adapter/signature"
	"github.com/guillermoBallester/clerksync/internal/adapter/store"
	"github.com/guillermoBallester/clerksync/internal/config"
	"github.com/guillermoBallester/clerksync/internal/core/service"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	logger.Info("starting clerksync-server",
		slog.String("version", version),
		slog.String("log_level", cfg.LogLevel.String()),
		slog.String("listen_addr", cfg.ListenAddr),
	)

	// The signing secret is checked before any request can arrive.
	verifier, err := signature.NewSvixVerifier(cfg.WebhookSecret)
	if err != nil {
		return fmt.Errorf("creating webhook verifier: %w", err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	pool, err := pgxpool.New(sigCtx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := store.Migrate(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("database migrations applied")

	users := store.NewUserRepository(store.New(pool))
	provisioner := service.NewUserProvisioner(users, logger)
	webhookSvc := service.NewWebhookService(verifier, provisioner, logger)
	webhookHandler := httpserver.NewWebhookHandler(webhookSvc, logger)

	// Route gate (optional).
	var gate *httpserver.RouteGate
	if cfg.RouteGateEnabled() {
		clerkClient := clerkauth.New(cfg.ClerkSecretKey)
		gate = httpserver.NewRouteGate(clerkClient, clerkClient, logger)
		logger.Info("clerk route gate enabled")
	}

	srv := httpserver.New(httpserver.Config{
		ListenAddr:        cfg.ListenAddr,
		CORSOrigin:        cfg.CORSOrigin,
		WebhookRateLimit:  cfg.WebhookRateLimit,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}, webhookHandler, gate, users, pool, logger)

	// Second signal during shutdown = hard exit.
	go func() {
		<-sigCtx.Done()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		logger.Warn("forced shutdown", slog.String("signal", sig.String()))
		os.Exit(1)
	}()

	g, ctx := errgroup.WithContext(sigCtx)

	g.Go(func() error {
		return srv.ListenAndServe()
	})

	// Shutdown trigger: when ctx is cancelled (signal or server failure),
	// gracefully stop the HTTP server.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}
