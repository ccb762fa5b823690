package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentdesk/candidate-tracker/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Candidates *handlers.CandidatesHandler
	Pages      *handlers.PageHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Get("/meta", cfg.Candidates.Meta)
	api.Get("/candidates", cfg.Candidates.ListCandidates)
	api.Post("/candidates", cfg.Candidates.CreateCandidate)
	api.Get("/candidates/:id", cfg.Candidates.GetCandidate)
	api.Put("/candidates/:id", cfg.Candidates.UpdateCandidate)
	api.Delete("/candidates/:id", cfg.Candidates.DeleteCandidate)

	app.Get("/", cfg.Pages.Index)
	app.Post("/candidates", cfg.Pages.Create)
	app.Get("/candidates/:id/edit", cfg.Pages.Edit)
	app.Post("/candidates/:id", cfg.Pages.Update)
	app.Get("/candidates/:id/delete", cfg.Pages.ConfirmDelete)
	app.Post("/candidates/:id/delete", cfg.Pages.Delete)
}
