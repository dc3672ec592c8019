package repos

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/syncflowhq/syncflow/internal/db/models"
)

// testDBSeq isolates tests from each other: each setupTestDB call gets its
// own uniquely named shared-cache database.
var testDBSeq atomic.Int64

// setupTestDB opens an in-memory SQLite database with the schema migrated.
// The database is named and shared-cache so every pooled connection sees the
// same schema, and one connection is pinned for the lifetime of the test so
// pool churn cannot destroy the database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repos_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
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
	return db
}

// seedProject inserts a minimal project row for the given owner.
func seedProject(t *testing.T, db *gorm.DB, ownerID uint, title, slug string) *models.Project {
	t.Helper()

	project := &models.Project{
		OwnerID:  ownerID,
		Title:    title,
		Client:   "Acme Corp",
		Slug:     slug,
		Status:   models.ProjectStatusActive,
		Timeline: models.Timeline{},
	}
	require.NoError(t, db.Create(project).Error, "Failed to seed project")
	return project
}
