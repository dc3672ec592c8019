// Package services provides the business logic between the HTTP surface and
// the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/syncflowhq/syncflow/internal/db"
	"github.com/syncflowhq/syncflow/internal/db/models"
	"github.com/syncflowhq/syncflow/internal/db/repos"
	"github.com/syncflowhq/syncflow/internal/events"
	"github.com/syncflowhq/syncflow/internal/logger"
	"github.com/syncflowhq/syncflow/internal/notify"
	"github.com/syncflowhq/syncflow/internal/templates"
	"github.com/syncflowhq/syncflow/internal/types"
)

// Project service errors
var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectCreateFailed = errors.New("failed to create project")
	ErrUnknownTemplate     = errors.New("unknown project template")
)

// Project handles project-related operations: creation with slug and
// template seeding, the atomic status update, and timeline replacement.
type Project struct {
	repo     *repos.ProjectRepository
	notifier notify.Notifier
	hub      *events.Hub
}

// NewProjectService creates a new instance of the project service
func NewProjectService(repo *repos.ProjectRepository, notifier notify.Notifier, hub *events.Hub) *Project {
	return &Project{
		repo:     repo,
		notifier: notifier,
		hub:      hub,
	}
}

// Create allocates a new project for the session owner: slug from the title,
// timeline seeded from the requested template, progress zero, status active.
func (s *Project) Create(ctx context.Context, sess types.Session, req *types.CreateProjectRequest) (*models.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tpl, ok := templates.Get(req.Template)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, req.Template)
	}

	project := &models.Project{
		OwnerID:     sess.OwnerID,
		OwnerEmail:  sess.OwnerEmail,
		Title:       strings.TrimSpace(req.Title),
		Client:      strings.TrimSpace(req.Client),
		ClientEmail: strings.TrimSpace(req.ClientEmail),
		Progress:    0,
		Status:      models.ProjectStatusActive,
		Timeline:    models.TimelineFromTemplate(tpl.Milestones),
		DueDate:     req.DueDate,
		CreatedAt:   time.Now().UTC(),
	}

	existing, err := s.repo.CountForOwner(ctx, sess.OwnerID)
	if err != nil {
		return nil, errors.Join(ErrProjectCreateFailed, err)
	}

	// The random slug token makes collisions vanishingly rare; one retry on
	// a duplicate key covers the remainder.
	created := false
	for attempt := 0; attempt < 2 && !created; attempt++ {
		slug, err := GenerateSlug(req.Title)
		if err != nil {
			return nil, errors.Join(ErrProjectCreateFailed, err)
		}
		project.Slug = slug

		err = s.repo.Create(ctx, project)
		if err == nil {
			created = true
		} else if !db.IsDuplicateKeyError(err) {
			return nil, errors.Join(ErrProjectCreateFailed, err)
		}
	}
	if !created {
		return nil, ErrProjectCreateFailed
	}

	if existing == 0 && sess.OwnerEmail != "" {
		s.sendWelcome(sess)
	}
	return project, nil
}

// Get retrieves one of the session owner's projects.
func (s *Project) Get(ctx context.Context, sess types.Session, id uint) (*models.Project, error) {
	project, err := s.repo.Get(ctx, sess.OwnerID, id)
	if err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}
	return project, nil
}

// GetBySlug retrieves a project by its public slug. No credential is
// required on this path.
func (s *Project) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	project, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}
	return project, nil
}

// List retrieves the session owner's projects, newest first.
func (s *Project) List(ctx context.Context, sess types.Session, opts *models.ListOptions) ([]models.Project, error) {
	return s.repo.ListForOwner(ctx, sess.OwnerID, opts)
}

// UpdateStatus persists progress, current focus, live link, and status as
// one atomic write. Progress is clamped to [0,100]. When the project has a
// client email the client is notified; a notification failure is logged and
// never rolls back the committed write.
func (s *Project) UpdateStatus(ctx context.Context, sess types.Session, id uint, req *types.UpdateStatusRequest) (*models.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	project, err := s.repo.Get(ctx, sess.OwnerID, id)
	if err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}

	status := project.Status
	if req.Status != "" {
		// Any-to-any transitions are allowed; status is informational.
		status, _ = models.ParseProjectStatus(req.Status)
	}
	progress := clampProgress(req.Progress)

	fields := map[string]interface{}{
		"progress":      progress,
		"current_focus": req.CurrentFocus,
		"live_link":     req.LiveLink,
		"status":        status,
	}
	if err := s.repo.UpdateFields(ctx, project.ID, fields); err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}

	project.Progress = progress
	project.CurrentFocus = req.CurrentFocus
	project.LiveLink = req.LiveLink
	project.Status = status

	s.hub.Publish(events.Event{
		Kind:      events.KindProjectUpdated,
		ProjectID: project.ID,
		Project:   project,
	})

	if project.ClientEmail != "" {
		s.notifyClient(project)
	}
	return project, nil
}

// ReplaceTimeline persists the entire ordered timeline as one write. Every
// milestone mutation funnels through here to avoid partial-update races.
func (s *Project) ReplaceTimeline(ctx context.Context, sess types.Session, id uint, timeline models.Timeline) (*models.Project, error) {
	project, err := s.repo.Get(ctx, sess.OwnerID, id)
	if err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}

	if timeline == nil {
		timeline = models.Timeline{}
	}
	if err := s.repo.UpdateFields(ctx, project.ID, map[string]interface{}{"timeline": timeline}); err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}
	project.Timeline = timeline

	s.hub.Publish(events.Event{
		Kind:      events.KindProjectUpdated,
		ProjectID: project.ID,
		Project:   project,
	})
	return project, nil
}

// AddMilestone appends a named milestone to the timeline. A blank name is a
// validation failure rather than a silent no-op at the API boundary.
func (s *Project) AddMilestone(ctx context.Context, sess types.Session, id uint, name string) (*models.Project, error) {
	project, err := s.repo.Get(ctx, sess.OwnerID, id)
	if err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}
	return s.ReplaceTimeline(ctx, sess, id, project.Timeline.Add(name))
}

// ToggleMilestone flips the completed flag on one milestone.
func (s *Project) ToggleMilestone(ctx context.Context, sess types.Session, id uint, milestoneID int64) (*models.Project, error) {
	project, err := s.repo.Get(ctx, sess.OwnerID, id)
	if err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}
	return s.ReplaceTimeline(ctx, sess, id, project.Timeline.Toggle(milestoneID))
}

// RemoveMilestone drops one milestone. Remaining milestones keep their IDs.
func (s *Project) RemoveMilestone(ctx context.Context, sess types.Session, id uint, milestoneID int64) (*models.Project, error) {
	project, err := s.repo.Get(ctx, sess.OwnerID, id)
	if err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}
	return s.ReplaceTimeline(ctx, sess, id, project.Timeline.Remove(milestoneID))
}

// ApplyTemplate replaces the whole timeline with a freshly generated
// sequence: from the named template, from explicit names, or from the
// default milestones when neither is given.
func (s *Project) ApplyTemplate(ctx context.Context, sess types.Session, id uint, req *types.ApplyTemplateRequest) (*models.Project, error) {
	names := req.Names
	if len(names) == 0 {
		if req.Template == "" {
			names = templates.DefaultMilestones
		} else {
			tpl, ok := templates.Get(req.Template)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, req.Template)
			}
			names = tpl.Milestones
		}
	}
	return s.ReplaceTimeline(ctx, sess, id, models.TimelineFromTemplate(names))
}

// Delete removes one of the session owner's projects.
func (s *Project) Delete(ctx context.Context, sess types.Session, id uint) error {
	if err := s.repo.Delete(ctx, sess.OwnerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Join(ErrProjectNotFound, err)
		}
		return err
	}
	s.hub.Publish(events.Event{
		Kind:      events.KindProjectDeleted,
		ProjectID: id,
	})
	return nil
}

// sendWelcome greets an owner on their first project. Fire-and-forget like
// every other send.
func (s *Project) sendWelcome(sess types.Session) {
	go func() {
		if err := s.notifier.SendWelcome(context.Background(), sess.OwnerEmail, sess.OwnerEmail); err != nil {
			logger.WarnWithFields("welcome email failed", map[string]interface{}{
				"owner_id": sess.OwnerID,
				"error":    err.Error(),
			})
		}
	}()
}

// notifyClient emails the client about a status update. Fire-and-forget:
// the save has already committed, so the send runs detached from the
// request context and only logs on failure.
func (s *Project) notifyClient(project *models.Project) {
	p := *project
	go func() {
		err := s.notifier.SendProjectUpdate(context.Background(),
			p.ClientEmail, p.Client, p.Title, p.Progress, p.CurrentFocus, p.Slug)
		if err != nil {
			logger.WarnWithFields("client update email failed", map[string]interface{}{
				"project_id": p.ID,
				"error":      err.Error(),
			})
		}
	}()
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
