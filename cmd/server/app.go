package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beyondgbrowse/snowgate/internal/handler"
	"github.com/beyondgbrowse/snowgate/internal/middleware"
	"github.com/beyondgbrowse/snowgate/internal/router"
)

// newApp builds the gateway application with its middleware chain and routes
func newApp(deps *Dependencies, sentryEnabled bool) *fiber.App {
	var report func(*fiber.Ctx, error)
	if sentryEnabled {
		report = middleware.CaptureError
	}

	app := fiber.New(fiber.Config{
		AppName:               "snowgate",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		UnescapePath:          true,
		DisableStartupMessage: deps.Config.IsProduction(),
		ErrorHandler:          handler.NewErrorHandler(deps.Logger, report),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.NewLoggerMiddleware(middleware.DefaultLoggerConfig(deps.Logger)).Handler())
	app.Use(middleware.Recover(deps.Logger, sentryEnabled))
	app.Use(middleware.NewMetricsMiddleware(middleware.DefaultMetricsConfig()).Handler())

	router.NewGateway(deps.GatewayHandler, deps.HealthHandler, deps.Logger).Mount(app)

	return app
}

// newMetricsApp serves the Prometheus registry on its own listener
func newMetricsApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "snowgate-metrics",
		DisableStartupMessage: true,
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	return app
}
