package repository

import (
	"gorm.io/gorm"

	"github.com/tdnghia98/Caracal/internal/apperror"
	"github.com/tdnghia98/Caracal/internal/model"
)

type AttemptRepository interface {
	// Upsert writes the attempt keyed on (test_id, student_id): a resubmission
	// for the same pairing replaces the existing row. On return attempt.ID is
	// populated with the live row's id.
	Upsert(attempt *model.Attempt) error
	Update(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindByIDWithAnswers(id uint) (*model.Attempt, error)
	FindByTestAndStudent(testID, studentID uint) (*model.Attempt, error)
	FindAllByTest(testID uint) ([]model.Attempt, error)
	FindAllByStudent(studentID uint) ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Upsert(attempt *model.Attempt) error {
	if err := r.db.Clauses(onConflict("test_id", "student_id")).Create(attempt).Error; err != nil {
		return &apperror.StoreWriteError{Op: "upsert attempt", Err: err}
	}
	// OnConflict does not report the surviving row's id on all backends;
	// re-read by natural key so callers can hang answers off attempt.ID.
	var live model.Attempt
	if err := r.db.Where("test_id = ? AND student_id = ?", attempt.TestID, attempt.StudentID).
		First(&live).Error; err != nil {
		return err
	}
	attempt.ID = live.ID
	return nil
}

func (r *attemptRepository) Update(attempt *model.Attempt) error {
	if err := r.db.Save(attempt).Error; err != nil {
		return &apperror.StoreWriteError{Op: "update attempt", Err: err}
	}
	return nil
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.First(&attempt, id).Error
	return &attempt, err
}

func (r *attemptRepository) FindByIDWithAnswers(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Test").
		Preload("Student").
		Preload("Answers.Question").
		First(&attempt, id).Error
	return &attempt, err
}

func (r *attemptRepository) FindByTestAndStudent(testID, studentID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("test_id = ? AND student_id = ?", testID, studentID).First(&attempt).Error
	return &attempt, err
}

func (r *attemptRepository) FindAllByTest(testID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Preload("Student").Where("test_id = ?", testID).
		Order("submitted_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindAllByStudent(studentID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.Preload("Test").Where("student_id = ?", studentID).
		Order("submitted_at DESC").Find(&attempts).Error
	return attempts, err
}
