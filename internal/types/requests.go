// Package types defines the API payload types shared by handlers, the Go
// client, and the CLI.
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/syncflowhq/syncflow/internal/db/models"
)

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	Title       string     `json:"title"`
	Client      string     `json:"client"`
	ClientEmail string     `json:"client_email,omitempty"`
	Template    string     `json:"template,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate rejects the request before it reaches the store.
func (r *CreateProjectRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(r.Client) == "" {
		return fmt.Errorf("client is required")
	}
	return nil
}

// UpdateStatusRequest carries the four owner-editable status fields. They
// are persisted atomically as one write.
type UpdateStatusRequest struct {
	Progress     int    `json:"progress"`
	CurrentFocus string `json:"current_focus"`
	LiveLink     string `json:"live_link"`
	Status       string `json:"status"`
}

// Validate checks the status value. Progress is clamped, not rejected, so it
// carries no validation here.
func (r *UpdateStatusRequest) Validate() error {
	if r.Status == "" {
		return nil
	}
	status, err := models.ParseProjectStatus(r.Status)
	if err != nil {
		return err
	}
	// "unknown" parses (it is the zero value's name) but is not a real
	// status, so it never enters the store.
	if status == models.ProjectStatusUnknown {
		return fmt.Errorf("invalid project status: %s", r.Status)
	}
	return nil
}

// ReplaceTimelineRequest replaces the whole ordered timeline in one write.
type ReplaceTimelineRequest struct {
	Timeline models.Timeline `json:"timeline"`
}

// AddMilestoneRequest appends one milestone to the timeline.
type AddMilestoneRequest struct {
	Name string `json:"name"`
}

// Validate rejects blank milestone names.
func (r *AddMilestoneRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// ApplyTemplateRequest reseeds the timeline from a named template, or from
// the default milestones when Names is given explicitly.
type ApplyTemplateRequest struct {
	Template string   `json:"template,omitempty"`
	Names    []string `json:"names,omitempty"`
}

// AddFeedbackRequest appends a client message to a project's feedback log.
type AddFeedbackRequest struct {
	Message string `json:"message"`
}

// Validate rejects blank messages.
func (r *AddFeedbackRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}
