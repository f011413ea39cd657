package recruitment_test

import (
	"context"
	"testing"
	"time"

	"hr-portal/internal/recruitment"
	recruitmenterrors "hr-portal/internal/recruitment/errors"

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
	require.NoError(t, db.AutoMigrate(recruitment.Models()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newApplicantService(t *testing.T) recruitment.Service[recruitment.Applicant] {
	db := newSQLiteDB(t)
	return recruitment.NewService(db, recruitment.Applicants, recruitment.NewRepository(db, recruitment.Applicants))
}

func TestService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newApplicantService(t)

	got, err := svc.Create(ctx, recruitment.Applicant{Name: "María Ruiz", Position: "Welder", Source: "Referral"})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "New", got.Status)
	assert.Equal(t, 1, got.Version)
	assert.False(t, got.AppliedAt.IsZero())

	_, err = svc.Create(ctx, recruitment.Applicant{Name: "X", Position: "Y", Status: "Approved"})
	assert.ErrorIs(t, err, recruitmenterrors.ErrInvalidStatus)
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()
	svc := newApplicantService(t)

	created, err := svc.Create(ctx, recruitment.Applicant{Name: "María Ruiz", Position: "Welder"})
	require.NoError(t, err)

	t.Run("status within enum", func(t *testing.T) {
		got, err := svc.SetStatus(ctx, created.ID, recruitment.StatusRequest{Status: "Interview"})
		require.NoError(t, err)
		assert.Equal(t, "Interview", got.Status)
		assert.Equal(t, 2, got.Version)
	})

	t.Run("status outside enum", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, created.ID, recruitment.StatusRequest{Status: "Approved"})
		assert.ErrorIs(t, err, recruitmenterrors.ErrInvalidStatus)
	})

	t.Run("stale version", func(t *testing.T) {
		v := 1
		_, err := svc.SetStatus(ctx, created.ID, recruitment.StatusRequest{Status: "Hired", Version: &v})
		assert.ErrorIs(t, err, recruitmenterrors.ErrVersionConflict)

		got, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Interview", got.Status)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, "nope", recruitment.StatusRequest{Status: "Hired"})
		assert.ErrorIs(t, err, recruitmenterrors.ErrRecordNotFound)
	})
}

func TestFilter_ResourceColumns(t *testing.T) {
	vacancies := []recruitment.Vacancy{
		{ID: "v1", Title: "Line Supervisor", Department: "Production", Plant: "Saltillo", Priority: "High", Status: "Open"},
		{ID: "v2", Title: "Payroll Analyst", Department: "Finance", Plant: "Monterrey", Priority: "Medium", Status: "Open"},
		{ID: "v3", Title: "Maintenance Tech", Department: "Production", Plant: "Monterrey", Priority: "Critical", Status: "Filled"},
	}

	got := recruitment.Filter(recruitment.Vacancies, vacancies, recruitment.ListQuery{
		Status:     "Open",
		Categories: map[string]string{"department": "Production"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "v1", got[0].ID)

	got = recruitment.Filter(recruitment.Vacancies, vacancies, recruitment.ListQuery{
		Search:     "monterrey",
		Categories: map[string]string{"plant": "all", "priority": ""},
	})
	assert.Len(t, got, 2)

	got = recruitment.Filter(recruitment.Vacancies, vacancies, recruitment.ListQuery{})
	assert.Equal(t, vacancies, got)
}

func TestService_ListOrdersAndFilters(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	svc := recruitment.NewService(db, recruitment.Interviews, recruitment.NewRepository(db, recruitment.Interviews))

	base := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	_, err := svc.Create(ctx, recruitment.Interview{ApplicantName: "Late", Position: "Welder", ScheduledAt: base.Add(48 * time.Hour), Mode: "Video"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, recruitment.Interview{ApplicantName: "Early", Position: "Welder", ScheduledAt: base})
	require.NoError(t, err)

	all, err := svc.List(ctx, recruitment.ListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Early", all[0].ApplicantName)
	assert.Equal(t, "Onsite", all[0].Mode)
	assert.Equal(t, "Scheduled", all[0].Status)

	video, err := svc.List(ctx, recruitment.ListQuery{Categories: map[string]string{"mode": "video"}})
	require.NoError(t, err)
	assert.Empty(t, video, "categorical filters are exact")

	video, err = svc.List(ctx, recruitment.ListQuery{Categories: map[string]string{"mode": "Video"}})
	require.NoError(t, err)
	assert.Len(t, video, 1)
}
