package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tdnghia98/Caracal/internal/dto"
	"github.com/tdnghia98/Caracal/internal/model"
	"github.com/tdnghia98/Caracal/internal/repository"
)

func newTestService(t *testing.T) TestService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Test{}, &model.Question{}))
	return NewTestService(repository.NewTestRepository(db))
}

func TestCreateTestWithQuestions(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.CreateTest(dto.CreateTestRequest{
		Title:    "History Final",
		Subject:  "History",
		SchoolID: 1,
		Questions: []dto.QuestionForTestRequest{
			{Prompt: "Q2", Position: 2, MaxScore: 5},
			{Prompt: "Q1", Position: 1, MaxScore: 5},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, resp.ID)

	detailed, err := svc.GetTestWithQuestions(resp.ID)
	require.NoError(t, err)
	require.Len(t, detailed.Questions, 2)
	// Questions come back in position order.
	require.Equal(t, 1, detailed.Questions[0].Position)
	require.Equal(t, 2, detailed.Questions[1].Position)
}

func TestCreateTestRejectsDuplicatePositions(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateTest(dto.CreateTestRequest{
		Title:    "Broken Test",
		SchoolID: 1,
		Questions: []dto.QuestionForTestRequest{
			{Prompt: "Q1", Position: 1, MaxScore: 5},
			{Prompt: "Q1 again", Position: 1, MaxScore: 5},
		},
	})
	require.Error(t, err)
}

func TestUpdateTestMetadata(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateTest(dto.CreateTestRequest{Title: "Draft", SchoolID: 1})
	require.NoError(t, err)

	updated, err := svc.UpdateTest(created.ID, dto.UpdateTestRequest{Title: "Published", Subject: "Math"})
	require.NoError(t, err)
	require.Equal(t, "Published", updated.Title)
	require.Equal(t, "Math", updated.Subject)

	_, err = svc.UpdateTest(9999, dto.UpdateTestRequest{Title: "Nope"})
	require.Error(t, err)
}
