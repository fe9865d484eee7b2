package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/tdnghia98/Caracal/internal/dto"
	"github.com/tdnghia98/Caracal/internal/model"
	"github.com/tdnghia98/Caracal/internal/repository"
)

type TestService interface {
	CreateTest(req dto.CreateTestRequest) (*dto.TestResponse, error)
	GetTestWithQuestions(id uint) (*dto.TestResponse, error)
	GetAllTests(withQuestions bool) ([]dto.TestResponse, error)
	UpdateTest(id uint, req dto.UpdateTestRequest) (*dto.TestResponse, error)
	DeleteTest(id uint) error
}

type testService struct {
	testRepo repository.TestRepository
}

func NewTestService(testRepo repository.TestRepository) TestService {
	return &testService{testRepo: testRepo}
}

func (s *testService) CreateTest(req dto.CreateTestRequest) (*dto.TestResponse, error) {
	positions := make(map[int]bool)
	for _, q := range req.Questions {
		if positions[q.Position] {
			return nil, fmt.Errorf("duplicate position %d found in questions", q.Position)
		}
		positions[q.Position] = true
	}

	test := model.Test{
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		SchoolID:    req.SchoolID,
	}
	for _, qDto := range req.Questions {
		var question model.Question
		copier.Copy(&question, &qDto)
		test.Questions = append(test.Questions, question)
	}

	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create test")
		return nil, err
	}

	var resp dto.TestResponse
	copier.Copy(&resp, &test)
	return &resp, nil
}

func (s *testService) GetTestWithQuestions(id uint) (*dto.TestResponse, error) {
	test, err := s.testRepo.FindByIDWithQuestions(id)
	if err != nil {
		log.Warn().Err(err).Uint("testID", id).Msg("Test not found")
		return nil, fmt.Errorf("test not found with ID %d: %w", id, err)
	}
	var resp dto.TestResponse
	copier.Copy(&resp, test)
	return &resp, nil
}

func (s *testService) GetAllTests(withQuestions bool) ([]dto.TestResponse, error) {
	tests, err := s.testRepo.FindAll(withQuestions)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tests")
		return nil, err
	}
	resps := make([]dto.TestResponse, 0, len(tests))
	for _, test := range tests {
		var resp dto.TestResponse
		copier.Copy(&resp, &test)
		resps = append(resps, resp)
	}
	return resps, nil
}

func (s *testService) UpdateTest(id uint, req dto.UpdateTestRequest) (*dto.TestResponse, error) {
	test, err := s.testRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("test not found with ID %d: %w", id, err)
	}
	test.Title = req.Title
	test.Subject = req.Subject
	test.Description = req.Description

	if err := s.testRepo.Update(test); err != nil {
		log.Error().Err(err).Uint("testID", id).Msg("Failed to update test")
		return nil, err
	}
	var resp dto.TestResponse
	copier.Copy(&resp, test)
	return &resp, nil
}

func (s *testService) DeleteTest(id uint) error {
	if _, err := s.testRepo.FindByID(id); err != nil {
		return fmt.Errorf("test not found with ID %d: %w", id, err)
	}
	return s.testRepo.Delete(id)
}
