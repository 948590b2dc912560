package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brubakerjm/etams/internal/api/http/handlers"
	"github.com/brubakerjm/etams/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Docs           *handlers.DocsHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Rule order mirrors the access policy:
// health, login, and docs are public; employee management requires the admin
// role; tasks require any authenticated identity; everything else also
// requires an identity.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	// Bearer validation runs on every request; anonymous requests pass
	// through and are stopped by the guards below where required.
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/docs/openapi.json", cfg.Docs.OpenAPI)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("/api")

	employees := api.Group("/employees", auth.RequireAdmin())
	employees.Get("/", cfg.Employees.List)
	employees.Post("/", cfg.Employees.Create)
	employees.Put("/:id", cfg.Employees.Update)
	employees.Put("/:id/password", cfg.Employees.UpdatePassword)
	employees.Delete("/:id", cfg.Employees.Delete)

	tasks := api.Group("/tasks", auth.RequireAuthenticated())
	tasks.Get("/", cfg.Tasks.List)
	tasks.Get("/user/:employeeId", cfg.Tasks.ListByEmployee)
	tasks.Post("/", cfg.Tasks.Create)
	tasks.Put("/:id", cfg.Tasks.Update)
	tasks.Delete("/:id", cfg.Tasks.Delete)

	// Unmatched paths still require an identity.
	app.Use(auth.RequireAuthenticated())
}
