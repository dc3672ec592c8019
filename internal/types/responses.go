package types

import (
	"time"

	"github.com/syncflowhq/syncflow/internal/db/models"
)

// ResponseSlug marks the outcome class of an API response so clients can
// branch without parsing error strings.
type ResponseSlug string

const (
	SuccessSlug      ResponseSlug = "success"
	ErrorSlug        ResponseSlug = "error"
	InvalidInputSlug ResponseSlug = "invalid-input"
	NotFoundSlug     ResponseSlug = "not-found"
	ServerErrorSlug  ResponseSlug = "server-error"
)

// Response is the envelope for every API response.
type Response struct {
	Slug  ResponseSlug `json:"slug"`
	Error string       `json:"error,omitempty"`
	Data  interface{}  `json:"data,omitempty"`
}

// ErrInvalidInput returns a Response with the InvalidInputSlug and the error message
func ErrInvalidInput(msg string) Response {
	return Response{
		Slug:  InvalidInputSlug,
		Error: msg,
	}
}

// ErrNotFound returns a Response with the NotFoundSlug and the error message
func ErrNotFound(msg string) Response {
	return Response{
		Slug:  NotFoundSlug,
		Error: msg,
	}
}

// ErrServer returns a Response with the ServerErrorSlug and the error message
func ErrServer(msg string) Response {
	return Response{
		Slug:  ServerErrorSlug,
		Error: msg,
	}
}

// Success returns a Response with the SuccessSlug and the data
func Success(data interface{}) Response {
	return Response{
		Slug: SuccessSlug,
		Data: data,
	}
}

// CreateProjectResponse returns the identifiers assigned at creation.
type CreateProjectResponse struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`
}

// ProjectResponse wraps a single project for the owner surface.
type ProjectResponse struct {
	Project models.Project `json:"project"`
}

// ProjectListResponse wraps the owner's project list.
type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
}

// FeedbackListResponse wraps a project's feedback log, newest first, with
// the unread count used by the dashboard badge.
type FeedbackListResponse struct {
	Feedback []models.Feedback `json:"feedback"`
	Unread   int64             `json:"unread"`
}

// PublicProject is the read-only projection served on the slug path. Owner
// identity and the client's email never cross the public trust boundary.
type PublicProject struct {
	ID           uint                 `json:"id"`
	Title        string               `json:"title"`
	Client       string               `json:"client"`
	Slug         string               `json:"slug"`
	Progress     int                  `json:"progress"`
	Status       models.ProjectStatus `json:"status"`
	CurrentFocus string               `json:"current_focus"`
	LiveLink     string               `json:"live_link,omitempty"`
	Timeline     models.Timeline      `json:"timeline"`
	CurrentStage int                  `json:"current_stage"`
	DueDate      *time.Time           `json:"due_date,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// NewPublicProject builds the public projection of a project, including the
// derived current stage.
func NewPublicProject(p *models.Project) PublicProject {
	return PublicProject{
		ID:           p.ID,
		Title:        p.Title,
		Client:       p.Client,
		Slug:         p.Slug,
		Progress:     p.Progress,
		Status:       p.Status,
		CurrentFocus: p.CurrentFocus,
		LiveLink:     p.LiveLink,
		Timeline:     p.Timeline,
		CurrentStage: p.Timeline.CurrentStageIndex(),
		DueDate:      p.DueDate,
		CreatedAt:    p.CreatedAt,
	}
}
