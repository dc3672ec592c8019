package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/syncflowhq/syncflow/internal/db/models"
	"github.com/syncflowhq/syncflow/internal/db/repos"
	"github.com/syncflowhq/syncflow/internal/events"
	"github.com/syncflowhq/syncflow/internal/logger"
	"github.com/syncflowhq/syncflow/internal/notify"
	"github.com/syncflowhq/syncflow/internal/types"
)

// Feedback service errors
var (
	ErrFeedbackNotFound     = errors.New("feedback not found")
	ErrFeedbackCreateFailed = errors.New("failed to create feedback")
)

// Feedback handles the append-only feedback stream attached to a project.
// It writes on a separate path from project edits so client submissions
// never contend with owner saves.
type Feedback struct {
	repo     *repos.FeedbackRepository
	projects *repos.ProjectRepository
	notifier notify.Notifier
	hub      *events.Hub
}

// NewFeedbackService creates a new instance of the feedback service
func NewFeedbackService(repo *repos.FeedbackRepository, projects *repos.ProjectRepository, notifier notify.Notifier, hub *events.Hub) *Feedback {
	return &Feedback{
		repo:     repo,
		projects: projects,
		notifier: notifier,
		hub:      hub,
	}
}

// Append adds a client message to the project's feedback log and notifies
// the owner best-effort. The message must not trim to empty.
func (s *Feedback) Append(ctx context.Context, projectID uint, req *types.AddFeedbackRequest) (*models.Feedback, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, errors.Join(ErrProjectNotFound, err)
	}

	feedback := &models.Feedback{
		ProjectID: project.ID,
		Message:   strings.TrimSpace(req.Message),
		Sender:    models.FeedbackSenderClient,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, errors.Join(ErrFeedbackCreateFailed, err)
	}

	s.hub.Publish(events.Event{
		Kind:      events.KindFeedbackAdded,
		ProjectID: project.ID,
		Feedback:  feedback,
	})

	if project.OwnerEmail != "" {
		s.notifyOwner(project, feedback)
	}
	return feedback, nil
}

// MarkRead flips a feedback entry to read for the session owner. One-way and
// idempotent: marking an already-read entry succeeds without change.
func (s *Feedback) MarkRead(ctx context.Context, sess types.Session, feedbackID uint) error {
	feedback, err := s.repo.Get(ctx, feedbackID)
	if err != nil {
		return errors.Join(ErrFeedbackNotFound, err)
	}

	// Ownership check: the entry must belong to one of the session owner's projects.
	if _, err := s.projects.Get(ctx, sess.OwnerID, feedback.ProjectID); err != nil {
		return errors.Join(ErrFeedbackNotFound, err)
	}

	if feedback.Read {
		return nil
	}
	if err := s.repo.MarkRead(ctx, feedbackID); err != nil {
		return errors.Join(ErrFeedbackNotFound, err)
	}

	feedback.Read = true
	s.hub.Publish(events.Event{
		Kind:      events.KindFeedbackRead,
		ProjectID: feedback.ProjectID,
		Feedback:  feedback,
	})
	return nil
}

// List returns a project's feedback for its owner, newest first, with the
// unread count.
func (s *Feedback) List(ctx context.Context, sess types.Session, projectID uint, opts *models.ListOptions) ([]models.Feedback, int64, error) {
	if _, err := s.projects.Get(ctx, sess.OwnerID, projectID); err != nil {
		return nil, 0, errors.Join(ErrProjectNotFound, err)
	}

	feedback, err := s.repo.ListForProject(ctx, projectID, opts)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, projectID)
	if err != nil {
		return nil, 0, err
	}
	return feedback, unread, nil
}

// notifyOwner emails the owner about new feedback. Best-effort: failures are
// logged, the feedback row is already committed.
func (s *Feedback) notifyOwner(project *models.Project, feedback *models.Feedback) {
	p := *project
	message := feedback.Message
	go func() {
		err := s.notifier.SendFeedbackNotice(context.Background(),
			p.OwnerEmail, p.Client, message, p.Title)
		if err != nil {
			logger.WarnWithFields("feedback email failed", map[string]interface{}{
				"project_id": p.ID,
				"error":      err.Error(),
			})
		}
	}()
}
