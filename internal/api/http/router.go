package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/lifematch-service/internal/api/http/handlers"
	"github.com/spec-kit/lifematch-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Compatibility *handlers.CompatibilityHandler
	Donors        *handlers.DonorsHandler
	Recipients    *handlers.RecipientsHandler
	Matches       *handlers.MatchesHandler
	Dashboard     *handlers.DashboardHandler
	Metrics       *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api/v1")
	api.Get("/blood-types/:type/compatibility", cfg.Compatibility.Get)

	donors := api.Group("/donors")
	donors.Post("", cfg.Donors.Register)
	donors.Get("", cfg.Donors.List)
	donors.Get("/:id", cfg.Donors.Get)
	donors.Patch("/:id/status", cfg.Donors.UpdateStatus)

	recipients := api.Group("/recipients")
	recipients.Post("", cfg.Recipients.Register)
	recipients.Get("", cfg.Recipients.List)
	recipients.Get("/:id", cfg.Recipients.Get)
	recipients.Get("/:id/matches", cfg.Recipients.Matches)

	matches := api.Group("/matches")
	matches.Post("", cfg.Matches.Contact)
	matches.Patch("/:id/status", cfg.Matches.UpdateStatus)

	api.Get("/dashboard/stats", cfg.Dashboard.Stats)
}

// NewApp builds a fiber app with middlewares and routes registered.
func NewApp(appName string, cfg RouteConfig, mw MiddlewareConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, mw.Logger, cfg.Metrics, mw.Timeout)
	RegisterRoutes(app, cfg)
	return app
}
