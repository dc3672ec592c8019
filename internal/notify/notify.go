// Package notify is the consumed email notification interface. All sends are
// fire-and-forget from the caller's perspective: a failure is logged and
// never rolls back the data write that triggered it.
package notify

import "context"

// Notifier sends transactional email on account and project activity.
type Notifier interface {
	// SendWelcome greets a newly registered owner.
	SendWelcome(ctx context.Context, email, name string) error
	// SendProjectUpdate tells a client their project status changed.
	SendProjectUpdate(ctx context.Context, email, clientName, projectTitle string, progress int, currentFocus, slug string) error
	// SendFeedbackNotice tells an owner a client left feedback.
	SendFeedbackNotice(ctx context.Context, ownerEmail, clientName, message, projectTitle string) error
}
