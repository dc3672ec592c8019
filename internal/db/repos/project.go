// Package repos provides database repository implementations
package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/syncflowhq/syncflow/internal/db/models"
)

// ProjectRepository handles database operations for projects. It is the only
// component that reads or writes project rows; every write is a single
// statement, so the fields of one call commit together or not at all.
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create inserts a new project and fills in its store-assigned ID.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a project by ID scoped to its owner.
func (r *ProjectRepository) Get(ctx context.Context, ownerID, id uint) (*models.Project, error) {
	var project models.Project
	query := r.db.WithContext(ctx).Where(models.Project{
		ID:      id,
		OwnerID: ownerID,
	})
	if err := query.First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByID retrieves a project without owner scoping. Used by internal flows
// that already hold a verified reference, such as feedback notification.
func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// GetBySlug retrieves a project by its public slug. There is deliberately no
// owner scoping here: the slug is the public read path.
func (r *ProjectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Where(models.Project{Slug: slug}).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListForOwner retrieves all projects belonging to an owner, newest first.
func (r *ProjectRepository) ListForOwner(ctx context.Context, ownerID uint, opts *models.ListOptions) ([]models.Project, error) {
	o := opts.Normalized()
	var projects []models.Project
	err := r.db.WithContext(ctx).Where(models.Project{OwnerID: ownerID}).
		Order(models.ProjectCreatedAtField + " DESC").
		Limit(o.Limit).Offset(o.Offset).Find(&projects).Error
	return projects, err
}

// CountForOwner returns the number of projects an owner holds.
func (r *ProjectRepository) CountForOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where(models.Project{OwnerID: ownerID}).Count(&count).Error
	return count, err
}

// UpdateFields applies a partial-field update to a project as one UPDATE
// statement. Returns gorm.ErrRecordNotFound when no row matches.
func (r *ProjectRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a project scoped to its owner.
func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id uint) error {
	result := r.db.WithContext(ctx).Where(models.Project{
		ID:      id,
		OwnerID: ownerID,
	}).Delete(&models.Project{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
