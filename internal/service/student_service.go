package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/tdnghia98/Caracal/internal/dto"
	"github.com/tdnghia98/Caracal/internal/model"
	"github.com/tdnghia98/Caracal/internal/repository"
)

type StudentService interface {
	CreateStudent(req dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudent(id uint) (*dto.StudentResponse, error)
	GetStudentsForSchool(schoolID uint) ([]dto.StudentResponse, error)
}

type studentService struct {
	repo repository.StudentRepository
}

func NewStudentService(repo repository.StudentRepository) StudentService {
	return &studentService{repo: repo}
}

func (s *studentService) CreateStudent(req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	student := model.Student{}
	copier.Copy(&student, &req)

	if err := s.repo.Create(&student); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create student")
		return nil, err
	}
	var resp dto.StudentResponse
	copier.Copy(&resp, &student)
	return &resp, nil
}

func (s *studentService) GetStudent(id uint) (*dto.StudentResponse, error) {
	student, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("student not found with ID %d: %w", id, err)
	}
	var resp dto.StudentResponse
	copier.Copy(&resp, student)
	return &resp, nil
}

func (s *studentService) GetStudentsForSchool(schoolID uint) ([]dto.StudentResponse, error) {
	students, err := s.repo.FindAllBySchool(schoolID)
	if err != nil {
		log.Error().Err(err).Uint("schoolID", schoolID).Msg("Failed to list students")
		return nil, err
	}
	resps := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		var resp dto.StudentResponse
		copier.Copy(&resp, &student)
		resps = append(resps, resp)
	}
	return resps, nil
}
