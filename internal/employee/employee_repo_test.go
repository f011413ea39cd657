package employee_test

import (
	"context"
	"testing"
	"time"

	"hr-portal/internal/employee"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&employee.Employee{}, &employee.Document{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestRepository_EmployeeWithDocuments(t *testing.T) {
	ctx := context.Background()
	repo := employee.NewRepository(newSQLiteDB(t))

	empl := existingEmployee()
	require.NoError(t, repo.Create(ctx, &empl))

	older := &employee.Document{ID: "doc-1", EmployeeID: empl.ID, Name: "id.png", UploadedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &employee.Document{ID: "doc-2", EmployeeID: empl.ID, Name: "contract.pdf", UploadedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.CreateDocument(ctx, older))
	require.NoError(t, repo.CreateDocument(ctx, newer))

	t.Run("find by code preloads newest documents first", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "EMP-000001")
		require.NoError(t, err)
		assert.Equal(t, empl.ID, got.ID)
		require.Len(t, got.Documents, 2)
		assert.Equal(t, "doc-2", got.Documents[0].ID)
	})

	t.Run("document scoped to employee", func(t *testing.T) {
		_, err := repo.FindDocument(ctx, "someone-else", "doc-1")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		require.NoError(t, repo.DeleteDocument(ctx, empl.ID, "doc-1"))
		got, err := repo.FindByID(ctx, empl.ID)
		require.NoError(t, err)
		assert.Len(t, got.Documents, 1)
	})

	t.Run("soft delete hides employee", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, empl.ID))
		_, err := repo.FindByID(ctx, empl.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, empl.ID), gorm.ErrRecordNotFound)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
