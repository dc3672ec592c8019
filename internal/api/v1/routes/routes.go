// Package routes defines the API routes and URL structure
package routes

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/syncflowhq/syncflow/internal/api/v1/handlers"
	"github.com/syncflowhq/syncflow/internal/api/v1/middleware"
)

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// RegisterRoutes configures all the v1 routes.
//
// NOTE: route ordering matters because fiber matches in registration order;
// static segments must be registered before params on the same group.
func RegisterRoutes(
	app *fiber.App,
	projectHandler *handlers.ProjectHandler,
	feedbackHandler *handlers.FeedbackHandler,
	publicHandler *handlers.PublicHandler,
	eventsHandler *handlers.EventsHandler,
) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	v1 := app.Group(APIv1Prefix)

	// Public client surface: slug only, no credential.
	public := v1.Group("/p")
	public.Get("/:slug", publicHandler.GetProjectBySlug)
	public.Get("/:slug/events", eventsHandler.StreamPublicProject)
	public.Post("/:slug/feedback", publicHandler.AddFeedback)

	// Owner surface: everything below requires a session.
	owner := v1.Group("/", middleware.RequireSession())

	projects := owner.Group("/projects")
	projects.Get("/", projectHandler.ListProjects)
	projects.Get("/:id", projectHandler.GetProject)
	projects.Post("/", projectHandler.CreateProject)
	projects.Put("/:id/status", projectHandler.UpdateStatus)
	projects.Put("/:id/timeline", projectHandler.ReplaceTimeline)
	projects.Post("/:id/timeline/template", projectHandler.ApplyTemplate)
	projects.Post("/:id/timeline/milestones", projectHandler.AddMilestone)
	projects.Put("/:id/timeline/milestones/:mid/toggle", projectHandler.ToggleMilestone)
	projects.Delete("/:id/timeline/milestones/:mid", projectHandler.RemoveMilestone)
	projects.Delete("/:id", projectHandler.DeleteProject)
	projects.Get("/:id/feedback", feedbackHandler.ListFeedback)
	projects.Get("/:id/events", eventsHandler.StreamProject)
	projects.Get("/:id/feedback/events", eventsHandler.StreamFeedback)

	feedback := owner.Group("/feedback")
	feedback.Put("/:id/read", feedbackHandler.MarkRead)
}
