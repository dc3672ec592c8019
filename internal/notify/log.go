package notify

import (
	"context"

	"github.com/syncflowhq/syncflow/internal/logger"
)

// LogNotifier logs instead of sending. Used when no Resend API key is
// configured, and as the default in tests.
type LogNotifier struct{}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// SendWelcome logs the welcome mail that would have been sent.
func (n *LogNotifier) SendWelcome(_ context.Context, email, name string) error {
	logger.InfoWithFields("welcome email skipped (no mailer configured)", map[string]interface{}{
		"email": email,
		"name":  name,
	})
	return nil
}

// SendProjectUpdate logs the update mail that would have been sent.
func (n *LogNotifier) SendProjectUpdate(_ context.Context, email, _, projectTitle string, progress int, _, _ string) error {
	logger.InfoWithFields("project update email skipped (no mailer configured)", map[string]interface{}{
		"email":    email,
		"project":  projectTitle,
		"progress": progress,
	})
	return nil
}

// SendFeedbackNotice logs the feedback mail that would have been sent.
func (n *LogNotifier) SendFeedbackNotice(_ context.Context, ownerEmail, clientName, _, projectTitle string) error {
	logger.InfoWithFields("feedback email skipped (no mailer configured)", map[string]interface{}{
		"email":   ownerEmail,
		"client":  clientName,
		"project": projectTitle,
	})
	return nil
}
