// Package server assembles the Fiber application: error handling,
// middleware chain, routes, metrics and API docs.
package server

import (
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	_ "cookbook/docs"
	"cookbook/internal/config"
	"cookbook/internal/http/handler"
	"cookbook/internal/http/middleware"
	"cookbook/internal/http/views"
)

// Options configure the application shell around the routes.
type Options struct {
	Log zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics.
	// A fresh registry is used when nil.
	Registry *prometheus.Registry
	// RateLimit.Max <= 0 disables rate limiting.
	RateLimit config.RateLimitConfig
	// StaticDir is served under /static when non-empty.
	StaticDir string
	// AllowOrigins is the CORS allow list; "*" when empty.
	AllowOrigins string
	// Tracing enables the otelfiber server middleware.
	Tracing bool
}

// New builds the application. Middleware order: tracing, request id,
// request log, metrics, CORS, rate limit, announce.
func New(opts Options, deps handler.Deps) (*fiber.App, error) {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "cookbook",
		ErrorHandler:          handler.ErrorHandler(),
		Views:                 views.Engine(),
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
	})

	if opts.Tracing {
		app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
			return c.Path() == middleware.MetricsPath
		})))
	}
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(opts.Log))
	app.Use(metrics.Handler())

	origins := opts.AllowOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))

	if opts.RateLimit.Max > 0 {
		app.Use(middleware.RateLimit(opts.RateLimit.Max, opts.RateLimit.Window))
	}
	app.Use(middleware.Announce(opts.Log))

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// docs.SwaggerInfo is shared by every app in the process and is never
	// written per request. An empty host and scheme list make the UI call
	// whatever origin served it.
	app.Get("/swagger/*", swagger.HandlerDefault)

	if opts.StaticDir != "" {
		app.Static("/static", opts.StaticDir)
	}

	handler.RegisterRoutes(app, deps)
	return app, nil
}
