package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/syncflowhq/syncflow/internal/api/v1/middleware"
	"github.com/syncflowhq/syncflow/internal/events"
	"github.com/syncflowhq/syncflow/internal/services"
	"github.com/syncflowhq/syncflow/internal/types"
)

// keepaliveInterval is how often an idle stream emits a comment so proxies
// do not drop the connection.
const keepaliveInterval = 30 * time.Second

// EventsHandler serves the live change feeds over Server-Sent Events. Each
// stream is one hub subscription; closing the connection cancels it.
type EventsHandler struct {
	projects *services.Project
	hub      *events.Hub
}

// NewEventsHandler creates a new events handler instance
func NewEventsHandler(projects *services.Project, hub *events.Hub) *EventsHandler {
	return &EventsHandler{
		projects: projects,
		hub:      hub,
	}
}

// StreamProject streams project change events for one of the session
// owner's projects
func (h *EventsHandler) StreamProject(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}
	project, err := h.projects.Get(c.Context(), middleware.Session(c), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrNotFound("project not found"))
	}

	streamEvents(c, h.hub.SubscribeProject(project.ID), marshalOwnerEvent)
	return nil
}

// StreamFeedback streams feedback change events for one of the session
// owner's projects
func (h *EventsHandler) StreamFeedback(c *fiber.Ctx) error {
	id, ok := projectID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("invalid project id"))
	}
	project, err := h.projects.Get(c.Context(), middleware.Session(c), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrNotFound("project not found"))
	}

	streamEvents(c, h.hub.SubscribeFeedback(project.ID), marshalOwnerEvent)
	return nil
}

// StreamPublicProject streams project change events for the project behind
// the slug. Payloads carry the public projection only.
func (h *EventsHandler) StreamPublicProject(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput("slug is required"))
	}
	project, err := h.projects.GetBySlug(c.Context(), slug)
	if err != nil {
		return c.Status(fiber.StatusNotFound).
			JSON(types.ErrNotFound("project not found"))
	}

	streamEvents(c, h.hub.SubscribeProject(project.ID), marshalPublicEvent)
	return nil
}

// publicEvent mirrors events.Event with the project reduced to its public
// projection, so owner identity and the client email stay off the slug path.
type publicEvent struct {
	Kind      events.Kind          `json:"kind"`
	ProjectID uint                 `json:"project_id"`
	Project   *types.PublicProject `json:"project,omitempty"`
}

func marshalOwnerEvent(ev events.Event) ([]byte, error) {
	return json.Marshal(ev)
}

func marshalPublicEvent(ev events.Event) ([]byte, error) {
	out := publicEvent{
		Kind:      ev.Kind,
		ProjectID: ev.ProjectID,
	}
	if ev.Project != nil {
		public := types.NewPublicProject(ev.Project)
		out.Project = &public
	}
	return json.Marshal(out)
}

// streamEvents writes the subscription onto the response as an SSE stream.
// The stream stays open until the client disconnects or the subscription is
// cancelled; a failed flush means the client went away.
func streamEvents(c *fiber.Ctx, sub *events.Subscription, marshal func(events.Event) ([]byte, error)) {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sub.Unsubscribe()

		// Opening comment tells the client the subscription is live.
		if err := writeFrame(w, []byte(": connected\n\n")); err != nil {
			return
		}

		keepalive := time.NewTicker(keepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				payload, err := marshal(ev)
				if err != nil {
					continue
				}
				frame := fmt.Sprintf("event: %s\ndata: %s\n\n", ev.Kind, payload)
				if err := writeFrame(w, []byte(frame)); err != nil {
					return
				}
			case <-keepalive.C:
				if err := writeFrame(w, []byte(": keepalive\n\n")); err != nil {
					return
				}
			}
		}
	}))
}

func writeFrame(w *bufio.Writer, frame []byte) error {
	if _, err := w.Write(frame); err != nil {
		return err
	}
	return w.Flush()
}
