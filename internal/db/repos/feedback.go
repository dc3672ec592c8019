package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/syncflowhq/syncflow/internal/db/models"
)

// FeedbackRepository handles database operations for project feedback.
// Feedback has its own write path so client submissions never contend with
// owner edits to the project row.
type FeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new instance of FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{
		db: db,
	}
}

// Create appends a feedback entry and fills in its store-assigned ID.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

// Get retrieves a feedback entry by ID.
func (r *FeedbackRepository) Get(ctx context.Context, id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ListForProject retrieves all feedback for a project, newest first.
// Entries sharing a timestamp are ordered by ID ascending so the result is a
// deterministic total order.
func (r *FeedbackRepository) ListForProject(ctx context.Context, projectID uint, opts *models.ListOptions) ([]models.Feedback, error) {
	o := opts.Normalized()
	var feedback []models.Feedback
	err := r.db.WithContext(ctx).Where(models.Feedback{ProjectID: projectID}).
		Order(models.FeedbackCreatedAtField + " DESC").Order("id ASC").
		Limit(o.Limit).Offset(o.Offset).Find(&feedback).Error
	return feedback, err
}

// MarkRead flips a feedback entry to read. The transition is one-way and
// idempotent: marking an already-read entry is not an error.
func (r *FeedbackRepository) MarkRead(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Feedback{}).
		Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountUnread returns the number of unread feedback entries for a project.
func (r *FeedbackRepository) CountUnread(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Feedback{}).
		Where(models.Feedback{ProjectID: projectID}).
		Where("read = ?", false).Count(&count).Error
	return count, err
}
