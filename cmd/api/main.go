package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/heritage-semijoias/api/internal/di"
	"github.com/heritage-semijoias/api/internal/handlers"
	"github.com/heritage-semijoias/api/internal/platform/config"
	"github.com/heritage-semijoias/api/internal/platform/observability"
	"github.com/heritage-semijoias/api/internal/platform/secrets"
)

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	envValues, err := config.EnvironmentValues()
	if err != nil {
		logger.Fatal("failed to read environment values", zap.Error(err))
	}

	fetcher, err := newSecretFetcher(ctx, logger, envValues)
	if err != nil {
		logger.Fatal("failed to initialise secret fetcher", zap.Error(err))
	}
	defer func() {
		if err := fetcher.Close(); err != nil {
			logger.Warn("secret fetcher close error", zap.Error(err))
		}
	}()

	cfg, err := config.Load(ctx,
		config.WithSecretResolver(config.SecretResolverFunc(fetcher.Resolve)),
	)
	if err != nil {
		var missing *config.MissingSecretsError
		if errors.As(err, &missing) {
			logger.Fatal("missing required secrets", zap.Strings("secrets", missing.RedactedNames()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to assemble dependencies", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := container.Close(closeCtx); err != nil {
			logger.Warn("container close error", zap.Error(err))
		}
	}()

	router := buildRouter(container, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("heritage-semijoias api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildRouter(container *di.Container, cfg config.Config) chi.Router {
	logger := container.Logger

	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.TraceMiddleware(cfg.Trace.ProjectID),
		observability.RecoveryMiddleware(logger.Named("http")),
		observability.RequestLoggerMiddleware(cfg.Trace.ProjectID),
	}

	healthHandlers := handlers.NewHealthHandlers(handlers.HealthHandlersDeps{
		Repo:    container.Health,
		Version: buildVersion(),
	})
	cartHandlers := handlers.NewCartHandlers(container.Services.Cart)
	checkoutHandlers := handlers.NewCheckoutHandlers(container.Services.Checkout)
	catalogHandlers := handlers.NewCatalogHandlers(container.Services.Catalog)
	shippingHandlers := handlers.NewShippingHandlers(container.Services.Quotes)

	return handlers.NewRouter(
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithCatalogRoutes(catalogHandlers.Routes),
		handlers.WithCartRoutes(cartHandlers.Routes),
		handlers.WithCheckoutRoutes(checkoutHandlers.Routes),
		handlers.WithShippingRoutes(shippingHandlers.Routes),
	)
}

func buildVersion() string {
	return strings.TrimSpace(os.Getenv("API_BUILD_VERSION"))
}

func newSecretFetcher(ctx context.Context, logger *zap.Logger, env map[string]string) (*secrets.Fetcher, error) {
	opts := []secrets.Option{
		secrets.WithLogger(logger.Named("secrets")),
	}
	if project := strings.TrimSpace(env["API_SECRETS_PROJECT_ID"]); project != "" {
		opts = append(opts, secrets.WithDefaultProject(project))
	}
	if fallback := strings.TrimSpace(env["API_SECRETS_FALLBACK_FILE"]); fallback != "" {
		opts = append(opts, secrets.WithFallbackFile(fallback))
	}
	return secrets.NewFetcher(ctx, opts...)
}
