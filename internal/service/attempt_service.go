package service

import (
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/tdnghia98/Caracal/internal/dto"
	"github.com/tdnghia98/Caracal/internal/model"
	"github.com/tdnghia98/Caracal/internal/repository"
)

// AttemptService owns attempt submission and answer reconciliation.
//
// ReplaceAnswers and UpsertAnswers are the two entry points of the
// reconciliation layer: the first guarantees the stored answer set exactly
// equals the submitted list (delete, then conflict-key upsert), the second
// only writes the listed answers and must not be used where stale rows have
// to disappear.
type AttemptService interface {
	SubmitTest(testID uint, req dto.SubmitAttemptRequest) (*dto.AttemptDetailResponse, error)
	ReplaceAnswers(attemptID uint, answers []dto.AnswerSubmission) ([]model.AttemptAnswer, error)
	UpsertAnswers(attemptID uint, answers []dto.AnswerSubmission) ([]model.AttemptAnswer, error)
	GetAttemptDetails(attemptID uint) (*dto.AttemptDetailResponse, error)
	GetAttemptsForTest(testID uint) ([]dto.AttemptSummaryResponse, error)
	GetAttemptsForStudent(studentID uint) ([]dto.AttemptSummaryResponse, error)
}

type attemptService struct {
	testRepo    repository.TestRepository
	studentRepo repository.StudentRepository
	attemptRepo repository.AttemptRepository
	answerRepo  repository.AttemptAnswerRepository
	gradeSvc    GradeService
}

func NewAttemptService(
	testRepo repository.TestRepository,
	studentRepo repository.StudentRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AttemptAnswerRepository,
	gradeSvc GradeService,
) AttemptService {
	return &attemptService{
		testRepo:    testRepo,
		studentRepo: studentRepo,
		attemptRepo: attemptRepo,
		answerRepo:  answerRepo,
		gradeSvc:    gradeSvc,
	}
}

// ReplaceAnswers makes the stored answer set for the attempt exactly match
// the given list.
//
// The delete runs unconditionally, even for a non-empty list: the new list
// does not enumerate stale question ids that must disappear, so
// delete-then-upsert is the only way to get exact replacement. A failure
// between the two calls leaves the attempt with zero answers; that state is
// deliberate and the safe caller response is to retry the whole flow, which
// both steps tolerate (deleting an empty set is a no-op, the upsert is
// idempotent by construction). The two calls are never merged into one
// statement or transaction so the between-steps behavior stays observable.
func (s *attemptService) ReplaceAnswers(attemptID uint, answers []dto.AnswerSubmission) ([]model.AttemptAnswer, error) {
	if err := s.answerRepo.DeleteByAttemptID(attemptID); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("ReplaceAnswers: delete step failed, upsert not attempted")
		return nil, err
	}

	if len(answers) == 0 {
		return []model.AttemptAnswer{}, nil
	}

	return s.UpsertAnswers(attemptID, answers)
}

// UpsertAnswers writes the given answers for the attempt without touching any
// existing row the list does not mention.
func (s *attemptService) UpsertAnswers(attemptID uint, answers []dto.AnswerSubmission) ([]model.AttemptAnswer, error) {
	rows := make([]model.AttemptAnswer, 0, len(answers))
	for _, a := range answers {
		rows = append(rows, model.AttemptAnswer{
			AttemptID:  attemptID,
			QuestionID: a.QuestionID,
			AnswerText: a.AnswerText,
			Correct:    a.Correct,
			Score:      a.Score,
		})
	}

	if err := s.answerRepo.UpsertMany(rows); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Int("count", len(rows)).Msg("UpsertAnswers: upsert failed")
		return nil, err
	}
	return rows, nil
}

// SubmitTest records one student's full submission for a test: the attempt row
// is upserted on its (test, student) key, the answer set is reconciled to the
// submitted list, and the total score is the sum of the per-answer scores.
func (s *attemptService) SubmitTest(testID uint, req dto.SubmitAttemptRequest) (*dto.AttemptDetailResponse, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("SubmitTest: test not found")
		return nil, fmt.Errorf("test not found with ID %d: %w", testID, err)
	}
	if len(test.Questions) == 0 {
		return nil, fmt.Errorf("test ID %d has no questions, submission is not possible", testID)
	}

	if _, err := s.studentRepo.FindByID(req.StudentID); err != nil {
		log.Error().Err(err).Uint("studentID", req.StudentID).Msg("SubmitTest: student not found")
		return nil, fmt.Errorf("student not found with ID %d: %w", req.StudentID, err)
	}

	questionMap := make(map[uint]model.Question)
	for _, q := range test.Questions {
		questionMap[q.ID] = q
	}

	// Answers for questions outside this test are dropped, not rejected.
	validAnswers := make([]dto.AnswerSubmission, 0, len(req.Answers))
	for _, a := range req.Answers {
		if _, exists := questionMap[a.QuestionID]; !exists {
			log.Warn().Uint("questionID", a.QuestionID).Uint("testID", testID).Msg("SubmitTest: answer for a question not part of this test, skipping")
			continue
		}
		validAnswers = append(validAnswers, a)
	}

	attempt := model.Attempt{
		TestID:      testID,
		StudentID:   req.StudentID,
		SubmittedAt: time.Now(),
	}
	if err := s.attemptRepo.Upsert(&attempt); err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", req.StudentID).Msg("SubmitTest: attempt upsert failed")
		return nil, err
	}

	finalAnswers, err := s.ReplaceAnswers(attempt.ID, validAnswers)
	if err != nil {
		return nil, err
	}

	totalScore := 0.0
	for _, a := range finalAnswers {
		totalScore += a.Score
	}
	attempt.TotalScore = &totalScore
	if err := s.attemptRepo.Update(&attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("SubmitTest: failed to save total score")
		return nil, err
	}

	return s.GetAttemptDetails(attempt.ID)
}

// GetAttemptDetails returns one attempt with its answers and derived grade.
func (s *attemptService) GetAttemptDetails(attemptID uint) (*dto.AttemptDetailResponse, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("GetAttemptDetails: attempt not found")
		return nil, fmt.Errorf("attempt not found with ID %d: %w", attemptID, err)
	}

	var resp dto.AttemptDetailResponse
	if err := copier.Copy(&resp, attempt); err != nil {
		return nil, fmt.Errorf("error preparing response: %w", err)
	}
	if attempt.Test.ID != 0 {
		resp.TestTitle = attempt.Test.Title
	}
	if attempt.Student.ID != 0 {
		resp.StudentName = attempt.Student.FullName
	}

	resp.Answers = make([]dto.AnswerResponse, len(attempt.Answers))
	maxScore := 0.0
	for i, ansModel := range attempt.Answers {
		var ansDTO dto.AnswerResponse
		copier.Copy(&ansDTO, &ansModel)
		if ansModel.Question.ID != 0 {
			var qDTO dto.QuestionResponse
			copier.Copy(&qDTO, &ansModel.Question)
			ansDTO.Question = qDTO
			maxScore += ansModel.Question.MaxScore
		}
		resp.Answers[i] = ansDTO
	}

	if attempt.TotalScore != nil && maxScore > 0 {
		pct, errPct := s.gradeSvc.Percentage(*attempt.TotalScore, maxScore)
		if errPct != nil {
			log.Warn().Err(errPct).Uint("attemptID", attemptID).Msg("GetAttemptDetails: could not derive percentage")
		} else {
			resp.Percentage = &pct
			resp.LetterGrade = s.gradeSvc.Letter(pct)
		}
	}
	return &resp, nil
}

func (s *attemptService) GetAttemptsForTest(testID uint) ([]dto.AttemptSummaryResponse, error) {
	attempts, err := s.attemptRepo.FindAllByTest(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetAttemptsForTest: query failed")
		return nil, fmt.Errorf("error fetching attempts for test %d: %w", testID, err)
	}
	return summarize(attempts), nil
}

func (s *attemptService) GetAttemptsForStudent(studentID uint) ([]dto.AttemptSummaryResponse, error) {
	attempts, err := s.attemptRepo.FindAllByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("GetAttemptsForStudent: query failed")
		return nil, fmt.Errorf("error fetching attempts for student %d: %w", studentID, err)
	}
	return summarize(attempts), nil
}

func summarize(attempts []model.Attempt) []dto.AttemptSummaryResponse {
	summaries := make([]dto.AttemptSummaryResponse, 0, len(attempts))
	for _, attempt := range attempts {
		var summary dto.AttemptSummaryResponse
		if err := copier.Copy(&summary, &attempt); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Error copying attempt to summary DTO")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
