package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/provider-directory/internal/api/http/handlers"
	"github.com/spec-kit/provider-directory/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Providers      *handlers.ProvidersHandler
	Categories     *handlers.CategoriesHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
	ApplyLimiter   fiber.Handler
}

// RegisterRoutes wires HTTP routes. Moderation writes sit behind the admin
// session; public reads carry optional authentication so the approved
// filter can pass through for moderators.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/categories", cfg.Categories.List)
	api.Post("/admin/login", cfg.Admin.Login)

	providers := api.Group("/providers")
	providers.Get("/", cfg.AuthMiddleware.Authenticate, cfg.Providers.List)
	if cfg.ApplyLimiter != nil {
		providers.Post("/", cfg.ApplyLimiter, cfg.Providers.Create)
	} else {
		providers.Post("/", cfg.Providers.Create)
	}
	providers.Get("/:id", cfg.AuthMiddleware.Authenticate, cfg.Providers.Get)
	providers.Put("/:id", cfg.AuthMiddleware.Authenticate, auth.RequireAdmin(), cfg.Providers.Update)
	providers.Delete("/:id", cfg.AuthMiddleware.Authenticate, auth.RequireAdmin(), cfg.Providers.Delete)
}
