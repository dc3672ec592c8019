package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/syncflowhq/syncflow/internal/db/models"
	"github.com/syncflowhq/syncflow/internal/db/repos"
	"github.com/syncflowhq/syncflow/internal/events"
	"github.com/syncflowhq/syncflow/internal/types"
)

var testSession = types.Session{
	OwnerID:    1,
	OwnerEmail: "owner@example.com",
}

// sentNotification records one call into the fake notifier.
type sentNotification struct {
	kind  string
	to    string
	title string
}

// fakeNotifier records notifications. Sends run in background goroutines, so
// tests poll with waitForSends.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *fakeNotifier) SendWelcome(_ context.Context, email, _ string) error {
	n.record(sentNotification{kind: "welcome", to: email})
	return nil
}

func (n *fakeNotifier) SendProjectUpdate(_ context.Context, email, _, projectTitle string, _ int, _, _ string) error {
	n.record(sentNotification{kind: "project_update", to: email, title: projectTitle})
	return nil
}

func (n *fakeNotifier) SendFeedbackNotice(_ context.Context, ownerEmail, _, _, projectTitle string) error {
	n.record(sentNotification{kind: "feedback", to: ownerEmail, title: projectTitle})
	return nil
}

func (n *fakeNotifier) record(s sentNotification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, s)
}

func (n *fakeNotifier) snapshot() []sentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentNotification, len(n.sent))
	copy(out, n.sent)
	return out
}

// waitForKind polls until a notification of the given kind has been recorded.
func (n *fakeNotifier) waitForKind(t *testing.T, kind string) sentNotification {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		for _, s := range n.snapshot() {
			if s.kind == kind {
				return s
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for a %s notification, got %v", kind, n.snapshot())
			return sentNotification{}
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// countKind reports how many notifications of the given kind were recorded.
func (n *fakeNotifier) countKind(kind string) int {
	count := 0
	for _, s := range n.snapshot() {
		if s.kind == kind {
			count++
		}
	}
	return count
}

// testEnv bundles the service layer over an in-memory database.
type testEnv struct {
	projects *Project
	feedback *Feedback
	notifier *fakeNotifier
	hub      *events.Hub
	db       *gorm.DB
}

// testDBSeq isolates tests from each other: each newTestEnv call gets its
// own uniquely named shared-cache database.
var testDBSeq atomic.Int64

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A named shared-cache database keeps every pooled connection on the
	// same schema; a pinned connection keeps the database alive through
	// pool churn.
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "Failed to open in-memory database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to access underlying database")
	pin, err := sqlDB.Conn(context.Background())
	require.NoError(t, err, "Failed to pin database connection")

	require.NoError(t, db.AutoMigrate(&models.Project{}, &models.Feedback{}), "Failed to migrate schema")

	t.Cleanup(func() {
		_ = pin.Close()
		_ = sqlDB.Close()
	})

	projectRepo := repos.NewProjectRepository(db)
	feedbackRepo := repos.NewFeedbackRepository(db)
	notifier := &fakeNotifier{}
	hub := events.NewHub()

	return &testEnv{
		projects: NewProjectService(projectRepo, notifier, hub),
		feedback: NewFeedbackService(feedbackRepo, projectRepo, notifier, hub),
		notifier: notifier,
		hub:      hub,
		db:       db,
	}
}

// createProject creates a project through the service under the test session.
func (e *testEnv) createProject(t *testing.T, req *types.CreateProjectRequest) *models.Project {
	t.Helper()
	project, err := e.projects.Create(context.Background(), testSession, req)
	require.NoError(t, err)
	return project
}
