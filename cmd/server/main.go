// Package main provides the entry point for the academic profile service HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/helixir/academic-profile-service/internal/auth"
	"github.com/helixir/academic-profile-service/internal/config"
	"github.com/helixir/academic-profile-service/internal/directory"
	"github.com/helixir/academic-profile-service/internal/docstore"
	"github.com/helixir/academic-profile-service/internal/observability"
	"github.com/helixir/academic-profile-service/internal/repository"
	httpserver "github.com/helixir/academic-profile-service/internal/server/http"
)

const metricsNamespace = "academic_directory"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local development reads secrets from .env; deployments set real env vars.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up structured logging.
	logger, logCloser, err := observability.OpenLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logCloser.Close()
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("academic-profile-service server starting")

	// Set up context with graceful shutdown via OS signals.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(metricsNamespace)
	}

	// Open the document store and make sure every collection exists.
	storeOpts, err := cfg.Storage.StoreOptions()
	if err != nil {
		return fmt.Errorf("storage options: %w", err)
	}
	store, err := docstore.Open(storeOpts, logger, metrics)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("failed to close store")
		}
	}()
	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	logger.Info().Str("backend", store.Kind()).Msg("document store ready")

	// Create repositories.
	profileRepo := repository.NewJSONProfileRepository(store.Profiles, logger, metrics)
	publicationRepo := repository.NewJSONPublicationRepository(store.Publications, logger, metrics)
	accountRepo := repository.NewJSONAccountRepository(store.Accounts, logger)

	// Create services.
	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("create token issuer: %w", err)
	}
	authSvc := auth.NewService(accountRepo, tokens, logger,
		auth.WithHashCost(cfg.Auth.BcryptCost),
		auth.WithLoginLimiter(auth.NewLoginLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginBurst)),
		auth.WithMetrics(metrics),
	)

	directorySvc := directory.NewService(profileRepo, publicationRepo, directory.Config{
		PlaceholderThreshold: cfg.Directory.PlaceholderThreshold,
		DefaultLimit:         cfg.Directory.DefaultLimit,
		MaxLimit:             cfg.Directory.MaxLimit,
		FeaturedLimit:        cfg.Directory.FeaturedLimit,
		PlaceholdersEnabled:  cfg.Directory.PlaceholdersEnabled,
	}, logger, metrics)

	// Create HTTP REST API server.
	httpCfg := httpserver.Config{
		Address:            cfg.Server.HTTPAddress(),
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		IdleTimeout:        cfg.Server.IdleTimeout,
		ShutdownTimeout:    cfg.Server.ShutdownTimeout,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		TrustProxyHeaders:  cfg.Server.TrustProxyHeaders,
		CookieName:         cfg.Auth.CookieName,
		CookieSecure:       cfg.Auth.CookieSecure,
	}

	httpSrv := httpserver.NewServer(httpCfg, httpserver.Dependencies{
		Profiles:     profileRepo,
		Publications: publicationRepo,
		Directory:    directorySvc,
		Auth:         authSvc,
		Store:        store,
		Metrics:      metrics,
	}, logger)

	// Set up Prometheus metrics handler on a separate port if configured.
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress(),
			Handler:      metricsMux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}
	}

	// Channel to collect server errors.
	errCh := make(chan error, 2)

	// Start HTTP REST API server in background.
	go func() {
		if err := httpSrv.Start(); err != nil {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Start metrics server if configured.
	if metricsServer != nil {
		go func() {
			logger.Info().
				Str("address", metricsServer.Addr).
				Msg("metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	readyLog := logger.Info().
		Str("http_address", httpCfg.Address).
		Str("storage", store.Kind())
	if metricsServer != nil {
		readyLog = readyLog.Str("metrics_address", metricsServer.Addr)
	}
	readyLog.Msg("academic-profile-service is ready")

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	// Graceful shutdown.
	logger.Info().Msg("shutting down academic-profile-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown error")
		}
	}

	logger.Info().Msg("academic-profile-service stopped")
	return nil
}
