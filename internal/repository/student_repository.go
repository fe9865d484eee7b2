package repository

import (
	"github.com/tdnghia98/Caracal/internal/model"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(student *model.Student) error
	Update(student *model.Student) error
	FindByID(id uint) (*model.Student, error)
	FindByEmail(email string) (*model.Student, error)
	FindAllBySchool(schoolID uint) ([]model.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(student *model.Student) error {
	return r.db.Create(student).Error
}

func (r *studentRepository) Update(student *model.Student) error {
	return r.db.Save(student).Error
}

func (r *studentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	err := r.db.First(&student, id).Error
	return &student, err
}

func (r *studentRepository) FindByEmail(email string) (*model.Student, error) {
	var student model.Student
	err := r.db.Where("email = ?", email).First(&student).Error
	return &student, err
}

func (r *studentRepository) FindAllBySchool(schoolID uint) ([]model.Student, error) {
	var students []model.Student
	err := r.db.Where("school_id = ?", schoolID).Order("full_name ASC").Find(&students).Error
	return students, err
}
