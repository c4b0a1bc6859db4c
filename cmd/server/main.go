package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/beyondgbrowse/snowgate/internal/config"
	"github.com/beyondgbrowse/snowgate/internal/middleware"
	"github.com/beyondgbrowse/snowgate/internal/pkg/logger"
)

const appVersion = "0.1.0"

func main() {
	os.Exit(run())
}

// run serves until shutdown and returns the process exit code after its
// deferred cleanup has run.
func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	log := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	defer func() { _ = logger.Sync() }()

	// Initialize Sentry if enabled
	sentryEnabled := cfg.Sentry.Enabled()
	if sentryEnabled {
		sentryConfig := middleware.SentryConfig{
			DSN:              cfg.Sentry.DSN,
			Environment:      cfg.Sentry.Environment,
			Release:          "snowgate@" + appVersion,
			SampleRate:       cfg.Sentry.SampleRate,
			TracesSampleRate: cfg.Sentry.TracesSampleRate,
			FlushTimeout:     5 * time.Second,
		}
		if sentryConfig.Environment == "" {
			sentryConfig.Environment = cfg.Server.Env
		}

		if err := middleware.InitSentry(sentryConfig); err != nil {
			log.Error("failed to initialize Sentry", zap.Error(err))
			sentryEnabled = false
		} else {
			log.Info("Sentry initialized",
				zap.String("environment", sentryConfig.Environment),
				zap.String("release", sentryConfig.Release),
			)
			defer middleware.FlushSentry(sentryConfig.FlushTimeout)
		}
	}

	deps, err := initDependencies(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to initialize dependencies", zap.Error(err))
		return 1
	}
	defer deps.Close()

	app := newApp(deps, sentryEnabled)

	var metricsApp *fiber.App
	metricsAddr := ""
	if cfg.Metrics.Port > 0 {
		metricsApp = newMetricsApp()
		metricsAddr = fmt.Sprintf(":%d", cfg.Metrics.Port)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(log, app, cfg.Server.Addr(), metricsApp, metricsAddr, quit); err != nil {
		log.Error("server failed", zap.Error(err))
		return 1
	}

	log.Info("server stopped")
	return 0
}

// serve runs the gateway and, when metricsApp is set, the metrics listener.
// It returns after a signal on quit or the first listener failure, having
// shut both apps down.
func serve(log *zap.Logger, app *fiber.App, addr string, metricsApp *fiber.App, metricsAddr string, quit <-chan os.Signal) error {
	errCh := make(chan error, 2)

	go func() {
		log.Info("starting server", zap.String("addr", addr), zap.String("version", appVersion))
		if err := app.Listen(addr); err != nil {
			errCh <- fmt.Errorf("gateway listener: %w", err)
		}
	}()

	if metricsApp != nil {
		go func() {
			log.Info("starting metrics listener", zap.String("addr", metricsAddr))
			if err := metricsApp.Listen(metricsAddr); err != nil {
				errCh <- fmt.Errorf("metrics listener: %w", err)
			}
		}()
	}

	var listenErr error
	select {
	case <-quit:
		log.Info("shutting down server...")
	case listenErr = <-errCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	if metricsApp != nil {
		if err := metricsApp.ShutdownWithContext(ctx); err != nil {
			log.Error("metrics shutdown error", zap.Error(err))
		}
	}

	return listenErr
}
