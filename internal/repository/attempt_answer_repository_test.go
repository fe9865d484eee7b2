package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tdnghia98/Caracal/internal/model"
)

func TestUpsertManyIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	attempt := seedAttempt(t, db)
	repo := NewAttemptAnswerRepository(db)

	batch := []model.AttemptAnswer{
		{AttemptID: attempt.ID, QuestionID: 1, AnswerText: "4", Correct: true, Score: 2},
		{AttemptID: attempt.ID, QuestionID: 2, AnswerText: "9", Correct: false, Score: 0},
	}

	require.NoError(t, repo.UpsertMany(batch))
	// Same batch again: the final state must equal a single application.
	second := []model.AttemptAnswer{
		{AttemptID: attempt.ID, QuestionID: 1, AnswerText: "4", Correct: true, Score: 2},
		{AttemptID: attempt.ID, QuestionID: 2, AnswerText: "9", Correct: false, Score: 0},
	}
	require.NoError(t, repo.UpsertMany(second))

	stored, err := repo.FindByAttemptID(attempt.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
}

func TestUpsertManyReplacesNonKeyFields(t *testing.T) {
	db := newTestDB(t)
	attempt := seedAttempt(t, db)
	repo := NewAttemptAnswerRepository(db)

	require.NoError(t, repo.UpsertMany([]model.AttemptAnswer{
		{AttemptID: attempt.ID, QuestionID: 1, AnswerText: "first try", Correct: false, Score: 0},
	}))
	require.NoError(t, repo.UpsertMany([]model.AttemptAnswer{
		{AttemptID: attempt.ID, QuestionID: 1, AnswerText: "second try", Correct: true, Score: 2},
	}))

	stored, err := repo.FindByAttemptID(attempt.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "second try", stored[0].AnswerText)
	require.True(t, stored[0].Correct)
	require.Equal(t, 2.0, stored[0].Score)
}

func TestUpsertManyEmptyBatchIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttemptAnswerRepository(db)
	require.NoError(t, repo.UpsertMany(nil))
}

func TestDeleteByAttemptIDEmptySetIsNoop(t *testing.T) {
	db := newTestDB(t)
	attempt := seedAttempt(t, db)
	repo := NewAttemptAnswerRepository(db)

	require.NoError(t, repo.DeleteByAttemptID(attempt.ID))
	require.NoError(t, repo.DeleteByAttemptID(attempt.ID))
}

func TestDeleteByAttemptIDOnlyTouchesOwnRows(t *testing.T) {
	db := newTestDB(t)
	attempt := seedAttempt(t, db)
	other := model.Attempt{TestID: attempt.TestID, StudentID: attempt.StudentID + 100}
	require.NoError(t, db.Create(&other).Error)
	repo := NewAttemptAnswerRepository(db)

	require.NoError(t, repo.UpsertMany([]model.AttemptAnswer{
		{AttemptID: attempt.ID, QuestionID: 1, AnswerText: "a"},
	}))
	require.NoError(t, repo.UpsertMany([]model.AttemptAnswer{
		{AttemptID: other.ID, QuestionID: 1, AnswerText: "b"},
	}))

	require.NoError(t, repo.DeleteByAttemptID(attempt.ID))

	mine, err := repo.FindByAttemptID(attempt.ID)
	require.NoError(t, err)
	require.Empty(t, mine)

	theirs, err := repo.FindByAttemptID(other.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
}
