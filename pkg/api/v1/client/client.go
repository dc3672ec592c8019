// Package client provides the Go API client for the SyncFlow API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/syncflowhq/syncflow/internal/db/models"
	"github.com/syncflowhq/syncflow/internal/types"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// DefaultBaseURL is the default base URL for the API
const DefaultBaseURL = "http://localhost:8080"

// Identity headers attached to owner-surface requests.
const (
	headerOwnerID    = "X-Owner-ID"
	headerOwnerEmail = "X-Owner-Email"
)

// Client is the interface for the API client
type Client interface {
	// Health check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Owner surface
	CreateProject(ctx context.Context, sess types.Session, req *types.CreateProjectRequest) (types.CreateProjectResponse, error)
	ListProjects(ctx context.Context, sess types.Session) ([]models.Project, error)
	GetProject(ctx context.Context, sess types.Session, id uint) (models.Project, error)
	UpdateStatus(ctx context.Context, sess types.Session, id uint, req *types.UpdateStatusRequest) (models.Project, error)
	ReplaceTimeline(ctx context.Context, sess types.Session, id uint, timeline models.Timeline) (models.Project, error)
	ApplyTemplate(ctx context.Context, sess types.Session, id uint, req *types.ApplyTemplateRequest) (models.Project, error)
	AddMilestone(ctx context.Context, sess types.Session, id uint, name string) (models.Project, error)
	ToggleMilestone(ctx context.Context, sess types.Session, id uint, milestoneID int64) (models.Project, error)
	RemoveMilestone(ctx context.Context, sess types.Session, id uint, milestoneID int64) (models.Project, error)
	DeleteProject(ctx context.Context, sess types.Session, id uint) error
	ListFeedback(ctx context.Context, sess types.Session, projectID uint) (types.FeedbackListResponse, error)
	MarkFeedbackRead(ctx context.Context, sess types.Session, feedbackID uint) error

	// Public surface
	GetPublicProject(ctx context.Context, slug string) (types.PublicProject, error)
	AddPublicFeedback(ctx context.Context, slug, message string) (models.Feedback, error)
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	return &APIClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, sess *types.Session, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Timeout from context deadline when present, client default otherwise
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")

	if sess != nil {
		agent.Set(headerOwnerID, fmt.Sprintf("%d", sess.OwnerID))
		if sess.OwnerEmail != "" {
			agent.Set(headerOwnerEmail, sess.OwnerEmail)
		}
	}

	if body != nil {
		agent.JSON(body)
	}
	return agent, nil
}

// executeRequest sends the request and decodes the Data field of the
// response envelope into v.
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, sess *types.Session, body, v interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, sess, body)
	if err != nil {
		return err
	}

	statusCode, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	var envelope types.Response
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	if statusCode < 200 || statusCode >= 300 {
		msg := envelope.Error
		if msg == "" {
			msg = string(respBody)
		}
		return &fiber.Error{
			Code:    statusCode,
			Message: msg,
		}
	}

	if v == nil || envelope.Data == nil {
		return nil
	}
	dataJSON, err := json.Marshal(envelope.Data)
	if err != nil {
		return fmt.Errorf("error marshaling data: %w", err)
	}
	return json.Unmarshal(dataJSON, v)
}

// HealthCheck checks the health of the API server
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	agent, err := c.createAgent(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, err
	}
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("error sending request: %w", errs[0])
	}
	if statusCode != http.StatusOK {
		return nil, &fiber.Error{Code: statusCode, Message: string(body)}
	}
	var health map[string]string
	if err := json.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	return health, nil
}

// CreateProject creates a new project for the session owner
func (c *APIClient) CreateProject(ctx context.Context, sess types.Session, req *types.CreateProjectRequest) (types.CreateProjectResponse, error) {
	var resp types.CreateProjectResponse
	err := c.executeRequest(ctx, http.MethodPost, "/api/v1/projects", &sess, req, &resp)
	return resp, err
}

// ListProjects lists the session owner's projects, newest first
func (c *APIClient) ListProjects(ctx context.Context, sess types.Session) ([]models.Project, error) {
	var resp types.ProjectListResponse
	err := c.executeRequest(ctx, http.MethodGet, "/api/v1/projects", &sess, nil, &resp)
	return resp.Projects, err
}

// GetProject retrieves one of the session owner's projects
func (c *APIClient) GetProject(ctx context.Context, sess types.Session, id uint) (models.Project, error) {
	var resp types.ProjectResponse
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", id), &sess, nil, &resp)
	return resp.Project, err
}

// UpdateStatus saves progress, focus, live link, and status in one write
func (c *APIClient) UpdateStatus(ctx context.Context, sess types.Session, id uint, req *types.UpdateStatusRequest) (models.Project, error) {
	var resp types.ProjectResponse
	err := c.executeRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d/status", id), &sess, req, &resp)
	return resp.Project, err
}

// ReplaceTimeline replaces the project's whole timeline
func (c *APIClient) ReplaceTimeline(ctx context.Context, sess types.Session, id uint, timeline models.Timeline) (models.Project, error) {
	var resp types.ProjectResponse
	req := types.ReplaceTimelineRequest{Timeline: timeline}
	err := c.executeRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d/timeline", id), &sess, &req, &resp)
	return resp.Project, err
}

// ApplyTemplate reseeds the timeline from a named template
func (c *APIClient) ApplyTemplate(ctx context.Context, sess types.Session, id uint, req *types.ApplyTemplateRequest) (models.Project, error) {
	var resp types.ProjectResponse
	err := c.executeRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/timeline/template", id), &sess, req, &resp)
	return resp.Project, err
}

// AddMilestone appends a milestone to the timeline
func (c *APIClient) AddMilestone(ctx context.Context, sess types.Session, id uint, name string) (models.Project, error) {
	var resp types.ProjectResponse
	req := types.AddMilestoneRequest{Name: name}
	err := c.executeRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/timeline/milestones", id), &sess, &req, &resp)
	return resp.Project, err
}

// ToggleMilestone flips one milestone's completed flag
func (c *APIClient) ToggleMilestone(ctx context.Context, sess types.Session, id uint, milestoneID int64) (models.Project, error) {
	var resp types.ProjectResponse
	err := c.executeRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/projects/%d/timeline/milestones/%d/toggle", id, milestoneID), &sess, nil, &resp)
	return resp.Project, err
}

// RemoveMilestone drops one milestone from the timeline
func (c *APIClient) RemoveMilestone(ctx context.Context, sess types.Session, id uint, milestoneID int64) (models.Project, error) {
	var resp types.ProjectResponse
	err := c.executeRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/projects/%d/timeline/milestones/%d", id, milestoneID), &sess, nil, &resp)
	return resp.Project, err
}

// DeleteProject removes one of the session owner's projects
func (c *APIClient) DeleteProject(ctx context.Context, sess types.Session, id uint) error {
	return c.executeRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/projects/%d", id), &sess, nil, nil)
}

// ListFeedback returns a project's feedback log, newest first
func (c *APIClient) ListFeedback(ctx context.Context, sess types.Session, projectID uint) (types.FeedbackListResponse, error) {
	var resp types.FeedbackListResponse
	err := c.executeRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/feedback", projectID), &sess, nil, &resp)
	return resp, err
}

// MarkFeedbackRead flips one feedback entry to read
func (c *APIClient) MarkFeedbackRead(ctx context.Context, sess types.Session, feedbackID uint) error {
	return c.executeRequest(ctx, http.MethodPut, fmt.Sprintf("/api/v1/feedback/%d/read", feedbackID), &sess, nil, nil)
}

// GetPublicProject retrieves the client projection behind a slug
func (c *APIClient) GetPublicProject(ctx context.Context, slug string) (types.PublicProject, error) {
	var resp types.PublicProject
	err := c.executeRequest(ctx, http.MethodGet, "/api/v1/p/"+url.PathEscape(slug), nil, nil, &resp)
	return resp, err
}

// AddPublicFeedback appends a client message to the project behind a slug
func (c *APIClient) AddPublicFeedback(ctx context.Context, slug, message string) (models.Feedback, error) {
	var resp models.Feedback
	req := types.AddFeedbackRequest{Message: message}
	err := c.executeRequest(ctx, http.MethodPost, "/api/v1/p/"+url.PathEscape(slug)+"/feedback", nil, &req, &resp)
	return resp, err
}
