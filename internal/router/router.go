package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edunext/mindmap-api/internal/config"
	"github.com/edunext/mindmap-api/internal/handler"
	"github.com/edunext/mindmap-api/internal/middleware"
	"github.com/edunext/mindmap-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	BlockHandler      *handler.BlockHandler
	AssignmentHandler *handler.AssignmentHandler
	GradingHandler    *handler.GradingHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Refusing to start beats silently serving unauthenticated block routes.
	if deps.JWTMiddleware == nil {
		panic("router: JWT middleware is required")
	}

	blocks := api.Group("/blocks/:courseID/:blockID", deps.JWTMiddleware)

	if deps.BlockHandler != nil {
		deps.BlockHandler.Register(blocks, middleware.RequireCourseTeam())
	}

	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(blocks)
	}

	if deps.GradingHandler != nil {
		grading := blocks.Group("", middleware.RequireCourseTeam())
		deps.GradingHandler.Register(grading)
	}
}
