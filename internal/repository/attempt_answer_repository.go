package repository

import (
	"gorm.io/gorm"

	"github.com/tdnghia98/Caracal/internal/apperror"
	"github.com/tdnghia98/Caracal/internal/model"
)

type AttemptAnswerRepository interface {
	// DeleteByAttemptID removes every answer row belonging to the attempt.
	// Deleting an already-empty set is a no-op, so the call is idempotent.
	DeleteByAttemptID(attemptID uint) error
	// UpsertMany writes the batch keyed on (attempt_id, question_id) in a
	// single store call with a single success/failure outcome.
	UpsertMany(answers []model.AttemptAnswer) error
	FindByAttemptID(attemptID uint) ([]model.AttemptAnswer, error)
}

type attemptAnswerRepository struct {
	db *gorm.DB
}

func NewAttemptAnswerRepository(db *gorm.DB) AttemptAnswerRepository {
	return &attemptAnswerRepository{db: db}
}

func (r *attemptAnswerRepository) DeleteByAttemptID(attemptID uint) error {
	err := r.db.Where("attempt_id = ?", attemptID).Delete(&model.AttemptAnswer{}).Error
	if err != nil {
		return &apperror.StoreWriteError{Op: "delete answers", Err: err}
	}
	return nil
}

func (r *attemptAnswerRepository) UpsertMany(answers []model.AttemptAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	err := r.db.Clauses(onConflict("attempt_id", "question_id")).Create(&answers).Error
	if err != nil {
		return &apperror.StoreWriteError{Op: "upsert answers", Err: err}
	}
	return nil
}

func (r *attemptAnswerRepository) FindByAttemptID(attemptID uint) ([]model.AttemptAnswer, error) {
	var answers []model.AttemptAnswer
	err := r.db.Preload("Question").Where("attempt_id = ?", attemptID).
		Order("question_id asc").Find(&answers).Error
	return answers, err
}
