// Package app assembles the HTTP application from its dependencies.
package app

import (
	fiber "github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/syncflowhq/syncflow/internal/api/v1/handlers"
	"github.com/syncflowhq/syncflow/internal/api/v1/middleware"
	"github.com/syncflowhq/syncflow/internal/api/v1/routes"
	"github.com/syncflowhq/syncflow/internal/db/repos"
	"github.com/syncflowhq/syncflow/internal/events"
	"github.com/syncflowhq/syncflow/internal/notify"
	"github.com/syncflowhq/syncflow/internal/services"
	"github.com/syncflowhq/syncflow/internal/types"
)

// NewApp wires repositories, services, and handlers onto a fiber app.
func NewApp(db *gorm.DB, notifier notify.Notifier, hub *events.Hub) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(middleware.Logger())

	projectRepo := repos.NewProjectRepository(db)
	feedbackRepo := repos.NewFeedbackRepository(db)

	projectService := services.NewProjectService(projectRepo, notifier, hub)
	feedbackService := services.NewFeedbackService(feedbackRepo, projectRepo, notifier, hub)

	routes.RegisterRoutes(app,
		handlers.NewProjectHandler(projectService),
		handlers.NewFeedbackHandler(feedbackService),
		handlers.NewPublicHandler(projectService, feedbackService),
		handlers.NewEventsHandler(projectService, hub),
	)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(types.ErrServer(err.Error()))
}
