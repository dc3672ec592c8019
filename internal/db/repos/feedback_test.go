package repos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/syncflowhq/syncflow/internal/db/models"
)

func seedFeedback(t *testing.T, repo *FeedbackRepository, projectID uint, message string, createdAt time.Time) *models.Feedback {
	t.Helper()

	feedback := &models.Feedback{
		ProjectID: projectID,
		Message:   message,
		Sender:    models.FeedbackSenderClient,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), feedback))
	return feedback
}

func TestFeedbackRepositoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	project := seedProject(t, db, 1, "Acme Site", "acme-site-abc123")
	created := seedFeedback(t, repo, project.ID, "Love the new header", time.Now().UTC())
	require.NotZero(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Love the new header", got.Message)
	assert.Equal(t, models.FeedbackSenderClient, got.Sender)
	assert.False(t, got.Read)

	_, err = repo.Get(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFeedbackRepositoryListForProject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	project := seedProject(t, db, 1, "Acme Site", "acme-site-abc123")
	other := seedProject(t, db, 1, "Other", "other-slug")

	now := time.Now().UTC().Truncate(time.Second)
	seedFeedback(t, repo, project.ID, "oldest", now.Add(-2*time.Minute))
	seedFeedback(t, repo, project.ID, "newest", now)
	// Two entries sharing a timestamp: insertion order breaks the tie
	first := seedFeedback(t, repo, project.ID, "tied first", now.Add(-time.Minute))
	second := seedFeedback(t, repo, project.ID, "tied second", now.Add(-time.Minute))
	seedFeedback(t, repo, other.ID, "other project", now)

	feedback, err := repo.ListForProject(ctx, project.ID, nil)
	require.NoError(t, err)
	require.Len(t, feedback, 4)

	// Newest first, then ID ascending within a shared timestamp
	assert.Equal(t, "newest", feedback[0].Message)
	assert.Equal(t, first.ID, feedback[1].ID)
	assert.Equal(t, second.ID, feedback[2].ID)
	assert.Equal(t, "oldest", feedback[3].Message)
}

func TestFeedbackRepositoryMarkRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	project := seedProject(t, db, 1, "Acme Site", "acme-site-abc123")
	created := seedFeedback(t, repo, project.ID, "first pass done?", time.Now().UTC())

	require.NoError(t, repo.MarkRead(ctx, created.ID))

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	// Idempotent
	require.NoError(t, repo.MarkRead(ctx, created.ID))

	err = repo.MarkRead(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFeedbackRepositoryCountUnread(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFeedbackRepository(db)
	ctx := context.Background()

	project := seedProject(t, db, 1, "Acme Site", "acme-site-abc123")

	count, err := repo.CountUnread(ctx, project.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	a := seedFeedback(t, repo, project.ID, "one", time.Now().UTC())
	seedFeedback(t, repo, project.ID, "two", time.Now().UTC())

	count, err = repo.CountUnread(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.MarkRead(ctx, a.ID))

	count, err = repo.CountUnread(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
