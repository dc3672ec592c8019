package handlers

import (
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/syncflowhq/syncflow/internal/api/v1/middleware"
	"github.com/syncflowhq/syncflow/internal/db/models"
	"github.com/syncflowhq/syncflow/internal/services"
	"github.com/syncflowhq/syncflow/internal/types"
)

// FeedbackHandler handles HTTP requests for the owner feedback surface
type FeedbackHandler struct {
	service *services.Feedback
}

// NewFeedbackHandler creates a new feedback handler instance
func NewFeedbackHandler(service *services.Feedback) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
	}
}

// ListFeedback returns a project's feedback log, newest first
func (h *FeedbackHandler) ListFeedback(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}

	opts := &models.ListOptions{
		Limit:  c.QueryInt("limit", models.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}

	feedback, unread, err := h.service.List(c.Context(), middleware.Session(c), id, opts)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound("project not found"))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}

	return c.JSON(types.Success(&types.FeedbackListResponse{
		Feedback: feedback,
		Unread:   unread,
	}))
}

// MarkRead flips one feedback entry to read
func (h *FeedbackHandler) MarkRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid feedback id"))
	}

	if err := h.service.MarkRead(c.Context(), middleware.Session(c), uint(id)); err != nil {
		if errors.Is(err, services.ErrFeedbackNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound("feedback not found"))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}
	return c.JSON(types.Success(nil))
}
