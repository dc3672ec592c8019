package test

import (
	"context"
	"sync"
)

// SentMail records a single notification delivered to the recording notifier.
type SentMail struct {
	Kind    string
	To      string
	Subject string
}

// RecordingNotifier captures notifications instead of sending email. Sends
// from the services run in background goroutines, so access is synchronized
// and tests should poll with WaitForMail rather than asserting immediately.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []SentMail
}

// NewRecordingNotifier creates an empty recording notifier.
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// SendWelcome records a welcome notification.
func (n *RecordingNotifier) SendWelcome(_ context.Context, email, name string) error {
	n.record(SentMail{Kind: "welcome", To: email, Subject: name})
	return nil
}

// SendProjectUpdate records a project update notification.
func (n *RecordingNotifier) SendProjectUpdate(_ context.Context, email, _, projectTitle string, _ int, _, _ string) error {
	n.record(SentMail{Kind: "project_update", To: email, Subject: projectTitle})
	return nil
}

// SendFeedbackNotice records a feedback notification.
func (n *RecordingNotifier) SendFeedbackNotice(_ context.Context, ownerEmail, _, _, projectTitle string) error {
	n.record(SentMail{Kind: "feedback", To: ownerEmail, Subject: projectTitle})
	return nil
}

func (n *RecordingNotifier) record(m SentMail) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, m)
}

// Sent returns a copy of everything recorded so far.
func (n *RecordingNotifier) Sent() []SentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]SentMail, len(n.sent))
	copy(out, n.sent)
	return out
}
