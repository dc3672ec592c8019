package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncflowhq/syncflow/internal/db/models"
)

func waitForEvent(t *testing.T, c <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-c:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub(t *testing.T) {
	t.Run("Subscribe and Publish", func(t *testing.T) {
		hub := NewHub()
		sub := hub.SubscribeProject(42)
		defer sub.Unsubscribe()

		published := Event{
			Kind:      KindProjectUpdated,
			ProjectID: 42,
			Project:   &models.Project{ID: 42, Title: "Acme Site"},
		}
		hub.Publish(published)

		got := waitForEvent(t, sub.C)
		assert.Equal(t, KindProjectUpdated, got.Kind)
		assert.Equal(t, uint(42), got.ProjectID)
		require.NotNil(t, got.Project)
		assert.Equal(t, "Acme Site", got.Project.Title)
	})

	t.Run("Project Filtering", func(t *testing.T) {
		hub := NewHub()
		sub := hub.SubscribeProject(1)
		defer sub.Unsubscribe()

		hub.Publish(Event{Kind: KindProjectUpdated, ProjectID: 2})
		hub.Publish(Event{Kind: KindProjectUpdated, ProjectID: 1})

		got := waitForEvent(t, sub.C)
		assert.Equal(t, uint(1), got.ProjectID)

		select {
		case ev := <-sub.C:
			t.Fatalf("unexpected extra event for project %d", ev.ProjectID)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("Multiple Subscribers", func(t *testing.T) {
		hub := NewHub()
		sub1 := hub.SubscribeProject(7)
		defer sub1.Unsubscribe()
		sub2 := hub.SubscribeProject(7)
		defer sub2.Unsubscribe()

		hub.Publish(Event{Kind: KindProjectDeleted, ProjectID: 7})

		got1 := waitForEvent(t, sub1.C)
		got2 := waitForEvent(t, sub2.C)
		assert.Equal(t, KindProjectDeleted, got1.Kind)
		assert.Equal(t, KindProjectDeleted, got2.Kind)
	})

	t.Run("Feedback Subscription", func(t *testing.T) {
		hub := NewHub()
		sub := hub.SubscribeFeedback(3)
		defer sub.Unsubscribe()

		// Project events should not reach a feedback subscriber.
		hub.Publish(Event{Kind: KindProjectUpdated, ProjectID: 3})
		hub.Publish(Event{
			Kind:      KindFeedbackAdded,
			ProjectID: 3,
			Feedback:  &models.Feedback{ID: 9, ProjectID: 3, Message: "looks great"},
		})

		got := waitForEvent(t, sub.C)
		assert.Equal(t, KindFeedbackAdded, got.Kind)
		require.NotNil(t, got.Feedback)
		assert.Equal(t, "looks great", got.Feedback.Message)
	})

	t.Run("Unsubscribe", func(t *testing.T) {
		hub := NewHub()
		sub := hub.SubscribeProject(5)
		sub.Unsubscribe()
		// Safe to call twice.
		sub.Unsubscribe()

		// Publishing after unsubscribe should not block or panic.
		hub.Publish(Event{Kind: KindProjectUpdated, ProjectID: 5})

		_, open := <-sub.C
		assert.False(t, open, "channel should be closed after unsubscribe")
	})

	t.Run("Slow Subscriber Does Not Block Publish", func(t *testing.T) {
		hub := NewHub()
		sub := hub.SubscribeProject(1)
		defer sub.Unsubscribe()

		// Never drain the channel; publishing past the buffer must not block.
		done := make(chan struct{})
		go func() {
			for i := 0; i < subscriptionBuffer*2; i++ {
				hub.Publish(Event{Kind: KindProjectUpdated, ProjectID: 1})
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("publish blocked on a slow subscriber")
		}
	})
}
