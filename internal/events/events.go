// Package events provides the live change feed between writers and viewers.
// Once a project write commits, every subscriber for that project observes
// it; this is the sole cross-session consistency mechanism.
package events

import (
	"sync"

	"github.com/syncflowhq/syncflow/internal/db/models"
	"github.com/syncflowhq/syncflow/internal/logger"
)

// Kind represents the type of change event
type Kind string

const (
	// KindProjectUpdated is emitted after any committed project write
	KindProjectUpdated Kind = "project_updated"
	// KindProjectDeleted is emitted after a project is deleted
	KindProjectDeleted Kind = "project_deleted"
	// KindFeedbackAdded is emitted after a feedback entry is appended
	KindFeedbackAdded Kind = "feedback_added"
	// KindFeedbackRead is emitted after a feedback entry is marked read
	KindFeedbackRead Kind = "feedback_read"

	// subscriptionBuffer is the per-subscriber channel buffer size
	subscriptionBuffer = 16
)

// Event carries a snapshot of the changed entity. Subscribers render from
// the latest snapshot rather than re-fetching.
type Event struct {
	Kind      Kind             `json:"kind"`
	ProjectID uint             `json:"project_id"`
	Project   *models.Project  `json:"project,omitempty"`
	Feedback  *models.Feedback `json:"feedback,omitempty"`
}

// feedbackEvent reports whether the event belongs on the feedback feed.
func (e Event) feedbackEvent() bool {
	return e.Kind == KindFeedbackAdded || e.Kind == KindFeedbackRead
}

// Subscription is a cancellable registration on the hub. Events arrive on C.
// Callers must call Unsubscribe when the view is no longer interested;
// teardown is deterministic and closes C.
type Subscription struct {
	C <-chan Event

	hub       *Hub
	id        uint64
	ch        chan Event
	projectID uint
	feedback  bool
	once      sync.Once
}

// Unsubscribe removes the subscription from the hub and closes C. It is safe
// to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.remove(s.id)
		close(s.ch)
	})
}

// Hub fans committed writes out to live subscribers.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*Subscription
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]*Subscription),
	}
}

// SubscribeProject registers for project change events on the given project.
func (h *Hub) SubscribeProject(projectID uint) *Subscription {
	return h.subscribe(projectID, false)
}

// SubscribeFeedback registers for feedback change events on the given project.
func (h *Hub) SubscribeFeedback(projectID uint) *Subscription {
	return h.subscribe(projectID, true)
}

func (h *Hub) subscribe(projectID uint, feedback bool) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	ch := make(chan Event, subscriptionBuffer)
	sub := &Subscription{
		C:         ch,
		hub:       h,
		id:        h.nextID,
		ch:        ch,
		projectID: projectID,
		feedback:  feedback,
	}
	h.subs[sub.id] = sub
	return sub
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// Publish delivers an event to every matching subscriber. Delivery never
// blocks the writer: a subscriber with a full buffer misses the event and a
// warning is logged.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if sub.projectID != event.ProjectID || sub.feedback != event.feedbackEvent() {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			logger.Warnf("dropping %s event for slow subscriber on project %d", event.Kind, event.ProjectID)
		}
	}
}
