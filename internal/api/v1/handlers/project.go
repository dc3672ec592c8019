// Package handlers contains the Fiber HTTP handlers for the v1 API.
package handlers

import (
	"errors"
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/syncflowhq/syncflow/internal/api/v1/middleware"
	"github.com/syncflowhq/syncflow/internal/db/models"
	"github.com/syncflowhq/syncflow/internal/services"
	"github.com/syncflowhq/syncflow/internal/types"
)

// ProjectHandler handles HTTP requests for owner project operations
type ProjectHandler struct {
	service *services.Project
}

// NewProjectHandler creates a new project handler instance
func NewProjectHandler(service *services.Project) *ProjectHandler {
	return &ProjectHandler{
		service: service,
	}
}

// CreateProject handles the request to create a new project
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req types.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}

	project, err := h.service.Create(c.Context(), middleware.Session(c), &req)
	if err != nil {
		if errors.Is(err, services.ErrUnknownTemplate) {
			return c.Status(fiber.StatusBadRequest).
				JSON(types.ErrInvalidInput(err.Error()))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}

	return c.Status(fiber.StatusCreated).
		JSON(types.Success(&types.CreateProjectResponse{
			ID:   project.ID,
			Slug: project.Slug,
		}))
}

// ListProjects returns the session owner's projects, newest first
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	opts := &models.ListOptions{
		Limit:  c.QueryInt("limit", models.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}

	projects, err := h.service.List(c.Context(), middleware.Session(c), opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(err.Error()))
	}

	return c.JSON(types.Success(&types.ProjectListResponse{
		Projects: projects,
	}))
}

// GetProject returns one of the session owner's projects
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}

	project, err := h.service.Get(c.Context(), middleware.Session(c), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrNotFound("project not found"))
	}

	return c.JSON(types.Success(&types.ProjectResponse{Project: *project}))
}

// UpdateStatus persists the four status fields in one atomic write
func (h *ProjectHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}

	var req types.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}

	project, err := h.service.UpdateStatus(c.Context(), middleware.Session(c), id, &req)
	if err != nil {
		return projectError(c, err)
	}

	return c.JSON(types.Success(&types.ProjectResponse{Project: *project}))
}

// ReplaceTimeline persists the whole ordered timeline in one write
func (h *ProjectHandler) ReplaceTimeline(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}

	var req types.ReplaceTimelineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}

	project, err := h.service.ReplaceTimeline(c.Context(), middleware.Session(c), id, req.Timeline)
	if err != nil {
		return projectError(c, err)
	}

	return c.JSON(types.Success(&types.ProjectResponse{Project: *project}))
}

// AddMilestone appends one milestone to the timeline
func (h *ProjectHandler) AddMilestone(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}

	var req types.AddMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}

	project, err := h.service.AddMilestone(c.Context(), middleware.Session(c), id, req.Name)
	if err != nil {
		return projectError(c, err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(types.Success(&types.ProjectResponse{Project: *project}))
}

// ToggleMilestone flips the completed flag of one milestone
func (h *ProjectHandler) ToggleMilestone(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}
	milestoneID, err := strconv.ParseInt(c.Params("mid"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid milestone id"))
	}

	project, err := h.service.ToggleMilestone(c.Context(), middleware.Session(c), id, milestoneID)
	if err != nil {
		return projectError(c, err)
	}

	return c.JSON(types.Success(&types.ProjectResponse{Project: *project}))
}

// RemoveMilestone drops one milestone from the timeline
func (h *ProjectHandler) RemoveMilestone(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}
	milestoneID, err := strconv.ParseInt(c.Params("mid"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid milestone id"))
	}

	project, err := h.service.RemoveMilestone(c.Context(), middleware.Session(c), id, milestoneID)
	if err != nil {
		return projectError(c, err)
	}

	return c.JSON(types.Success(&types.ProjectResponse{Project: *project}))
}

// ApplyTemplate replaces the timeline from a named template
func (h *ProjectHandler) ApplyTemplate(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}

	var req types.ApplyTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}

	project, err := h.service.ApplyTemplate(c.Context(), middleware.Session(c), id, &req)
	if err != nil {
		if errors.Is(err, services.ErrUnknownTemplate) {
			return c.Status(fiber.StatusBadRequest).
				JSON(types.ErrInvalidInput(err.Error()))
		}
		return projectError(c, err)
	}

	return c.JSON(types.Success(&types.ProjectResponse{Project: *project}))
}

// DeleteProject removes one of the session owner's projects
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}

	if err := h.service.Delete(c.Context(), middleware.Session(c), id); err != nil {
		return projectError(c, err)
	}
	return c.JSON(types.Success(nil))
}

func projectID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func projectError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrProjectNotFound) {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrNotFound("project not found"))
	}
	return c.Status(fiber.StatusInternalServerError).
		JSON(types.ErrServer(err.Error()))
}
