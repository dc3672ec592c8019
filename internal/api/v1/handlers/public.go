package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/syncflowhq/syncflow/internal/services"
	"github.com/syncflowhq/syncflow/internal/types"
)

// PublicHandler serves the client-facing surface. A project is addressable
// by slug alone, with no credential: anyone holding the slug can read the
// status and append feedback. That is the product's trust boundary.
type PublicHandler struct {
	projects *services.Project
	feedback *services.Feedback
}

// NewPublicHandler creates a new public handler instance
func NewPublicHandler(projects *services.Project, feedback *services.Feedback) *PublicHandler {
	return &PublicHandler{
		projects: projects,
		feedback: feedback,
	}
}

// GetProjectBySlug returns the read-only client projection of a project
func (h *PublicHandler) GetProjectBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("slug is required"))
	}

	project, err := h.projects.GetBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound("project not found"))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}

	return c.JSON(types.Success(types.NewPublicProject(project)))
}

// AddFeedback appends a client message to the project behind the slug
func (h *PublicHandler) AddFeedback(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("slug is required"))
	}

	var req types.AddFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}

	project, err := h.projects.GetBySlug(c.Context(), slug)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrNotFound("project not found"))
	}

	feedback, err := h.feedback.Append(c.Context(), project.ID, &req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(types.Success(feedback))
}
