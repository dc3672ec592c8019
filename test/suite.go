// Package test provides utilities for setting up and running integration
// tests against a real API server backed by a throwaway database.
package test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/syncflowhq/syncflow/internal/app"
	"github.com/syncflowhq/syncflow/internal/db"
	"github.com/syncflowhq/syncflow/internal/db/repos"
	"github.com/syncflowhq/syncflow/internal/events"
	"github.com/syncflowhq/syncflow/pkg/api/v1/client"
)

// DefaultTestTimeout bounds every suite's root context.
const DefaultTestTimeout = 30 * time.Second

// Suite encapsulates all components needed for integration testing:
// a temporary SQLite database, a real API server, and a real API client.
type Suite struct {
	t *testing.T

	App    *fiber.App
	Server *httptest.Server

	APIClient client.Client

	DB           *gorm.DB
	ProjectRepo  *repos.ProjectRepository
	FeedbackRepo *repos.FeedbackRepository

	Hub      *events.Hub
	Notifier *RecordingNotifier

	ctx        context.Context
	cancelFunc context.CancelFunc
	cleanup    func()
}

// NewTestSuite creates a fully wired test environment. Callers must defer
// Cleanup.
func NewTestSuite(t *testing.T) *Suite {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTestTimeout)
	s := &Suite{
		t:          t,
		ctx:        ctx,
		cancelFunc: cancel,
	}

	tmpDir, err := os.MkdirTemp("", "syncflow_test")
	require.NoError(t, err, "Failed to create temporary directory")

	database, err := gorm.Open(sqlite.Open(filepath.Join(tmpDir, "syncflow_test.db")), &gorm.Config{})
	require.NoError(t, err, "Failed to open test database")
	require.NoError(t, db.Migrate(database), "Failed to run migrations")

	s.DB = database
	s.ProjectRepo = repos.NewProjectRepository(database)
	s.FeedbackRepo = repos.NewFeedbackRepository(database)

	s.Hub = events.NewHub()
	s.Notifier = NewRecordingNotifier()

	s.App = app.NewApp(database, s.Notifier, s.Hub)
	s.Server = httptest.NewServer(adaptor.FiberApp(s.App))

	apiClient, err := client.NewClient(&client.Options{BaseURL: s.Server.URL})
	require.NoError(t, err, "Failed to create API client")
	s.APIClient = apiClient

	s.cleanup = func() {
		s.Server.Close()
		cancel()
		sqlDB, err := database.DB()
		if err == nil && sqlDB != nil {
			_ = sqlDB.Close()
		}
		_ = os.RemoveAll(tmpDir)
	}
	return s
}

// Context returns the suite's root context.
func (s *Suite) Context() context.Context {
	return s.ctx
}

// Cleanup shuts down the server and removes the temporary database.
func (s *Suite) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// WaitForMail polls the recording notifier until a notification of the given
// kind arrives or the deadline passes. Notifications are dispatched from
// background goroutines, so delivery order with respect to the HTTP response
// is not guaranteed.
func (s *Suite) WaitForMail(kind string) SentMail {
	s.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		for _, m := range s.Notifier.Sent() {
			if m.Kind == kind {
				return m
			}
		}
		if time.Now().After(deadline) {
			s.t.Fatalf("timed out waiting for a %s notification, got %v", kind, s.Notifier.Sent())
			return SentMail{}
		}
		time.Sleep(10 * time.Millisecond)
	}
}
