package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Sender addresses for each mail category.
const (
	fromOnboarding    = "SyncFlow <onboarding@resend.dev>"
	fromUpdates       = "SyncFlow <updates@resend.dev>"
	fromNotifications = "SyncFlow <notifications@resend.dev>"
)

// ResendNotifier sends email through the Resend API.
type ResendNotifier struct {
	client  *resend.Client
	baseURL string
}

// NewResendNotifier creates a notifier backed by Resend. baseURL is the
// public origin used to build client page links, e.g. "https://syncflow.dev".
func NewResendNotifier(apiKey, baseURL string) *ResendNotifier {
	return &ResendNotifier{
		client:  resend.NewClient(apiKey),
		baseURL: baseURL,
	}
}

// SendWelcome greets a newly registered owner.
func (n *ResendNotifier) SendWelcome(ctx context.Context, email, name string) error {
	params := &resend.SendEmailRequest{
		From:    fromOnboarding,
		To:      []string{email},
		Subject: "Welcome to SyncFlow! 🚀",
		Html: fmt.Sprintf(
			`<h1>Welcome, %s!</h1><p>SyncFlow keeps your clients in the loop while you build. Create a project, set your milestones, and share the link.</p>`,
			name),
	}
	_, err := n.client.Emails.SendWithContext(ctx, params)
	return err
}

// SendProjectUpdate tells a client their project status changed.
func (n *ResendNotifier) SendProjectUpdate(ctx context.Context, email, clientName, projectTitle string, progress int, currentFocus, slug string) error {
	params := &resend.SendEmailRequest{
		From:    fromUpdates,
		To:      []string{email},
		Subject: fmt.Sprintf("Project Update: %s is %d%% Complete", projectTitle, progress),
		Html: fmt.Sprintf(
			`<h2>Hi %s,</h2><p><strong>%s</strong> is now %d%% complete.</p><p>Current focus: %s</p><p><a href="%s/p/%s">View live status</a></p>`,
			clientName, projectTitle, progress, currentFocus, n.baseURL, slug),
	}
	_, err := n.client.Emails.SendWithContext(ctx, params)
	return err
}

// SendFeedbackNotice tells an owner a client left feedback.
func (n *ResendNotifier) SendFeedbackNotice(ctx context.Context, ownerEmail, clientName, message, projectTitle string) error {
	params := &resend.SendEmailRequest{
		From:    fromNotifications,
		To:      []string{ownerEmail},
		Subject: fmt.Sprintf("New Feedback from %s", clientName),
		Html: fmt.Sprintf(
			`<h2>%s left feedback on %s</h2><blockquote>%s</blockquote>`,
			clientName, projectTitle, message),
	}
	_, err := n.client.Emails.SendWithContext(ctx, params)
	return err
}
