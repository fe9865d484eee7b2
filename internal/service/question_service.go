package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/tdnghia98/Caracal/internal/dto"
	"github.com/tdnghia98/Caracal/internal/model"
	"github.com/tdnghia98/Caracal/internal/repository"
)

type QuestionService interface {
	CreateQuestion(req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestion(id uint) (*dto.QuestionResponse, error)
	GetQuestionsForTest(testID uint) ([]dto.QuestionResponse, error)
	UpdateQuestion(id uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(id uint) error
}

type questionService struct {
	repo     repository.QuestionRepository
	testRepo repository.TestRepository
}

func NewQuestionService(repo repository.QuestionRepository, testRepo repository.TestRepository) QuestionService {
	return &questionService{repo: repo, testRepo: testRepo}
}

func (s *questionService) CreateQuestion(req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := s.testRepo.FindByID(req.TestID); err != nil {
		log.Warn().Err(err).Uint("testID", req.TestID).Msg("Invalid TestID provided for question creation")
		return nil, fmt.Errorf("invalid TestID: %d", req.TestID)
	}

	question := model.Question{}
	copier.Copy(&question, &req)

	if err := s.repo.Create(&question); err != nil {
		log.Error().Err(err).Msg("Failed to create question")
		return nil, err
	}
	var resp dto.QuestionResponse
	copier.Copy(&resp, &question)
	return &resp, nil
}

func (s *questionService) GetQuestion(id uint) (*dto.QuestionResponse, error) {
	question, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %d: %w", id, err)
	}
	var resp dto.QuestionResponse
	copier.Copy(&resp, question)
	return &resp, nil
}

func (s *questionService) GetQuestionsForTest(testID uint) ([]dto.QuestionResponse, error) {
	questions, err := s.repo.FindByTestID(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to list questions")
		return nil, err
	}
	resps := make([]dto.QuestionResponse, 0, len(questions))
	for _, question := range questions {
		var resp dto.QuestionResponse
		copier.Copy(&resp, &question)
		resps = append(resps, resp)
	}
	return resps, nil
}

func (s *questionService) UpdateQuestion(id uint, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.repo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %d: %w", id, err)
	}

	question.Prompt = req.Prompt
	question.AnswerKey = req.AnswerKey
	question.Position = req.Position
	question.MaxScore = req.MaxScore

	if err := s.repo.Update(question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to update question")
		return nil, err
	}
	var resp dto.QuestionResponse
	copier.Copy(&resp, question)
	return &resp, nil
}

func (s *questionService) DeleteQuestion(id uint) error {
	if _, err := s.repo.FindByID(id); err != nil {
		return fmt.Errorf("question not found with ID %d: %w", id, err)
	}
	return s.repo.Delete(id)
}
