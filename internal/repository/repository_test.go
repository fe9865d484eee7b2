package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tdnghia98/Caracal/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.Student{},
		&model.Attempt{},
		&model.AttemptAnswer{},
		&model.UserProfile{},
	))
	return db
}

func seedAttempt(t *testing.T, db *gorm.DB) *model.Attempt {
	t.Helper()
	test := model.Test{Title: "Algebra Midterm", SchoolID: 1}
	require.NoError(t, db.Create(&test).Error)
	student := model.Student{FullName: "Ada Lovelace", Email: "ada@school.test", SchoolID: 1}
	require.NoError(t, db.Create(&student).Error)
	attempt := model.Attempt{TestID: test.ID, StudentID: student.ID}
	require.NoError(t, db.Create(&attempt).Error)
	return &attempt
}
