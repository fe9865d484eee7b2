package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/tdnghia98/Caracal/internal/dto"
	"github.com/tdnghia98/Caracal/internal/model"
	"github.com/tdnghia98/Caracal/internal/service"
)

// AttemptController exposes submission, reconciliation and read endpoints for
// test attempts, plus the read-only test catalogue.
type AttemptController struct {
	attemptSvc service.AttemptService
	testSvc    service.TestService
}

func NewAttemptController(attemptSvc service.AttemptService, testSvc service.TestService) *AttemptController {
	return &AttemptController{attemptSvc: attemptSvc, testSvc: testSvc}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// SubmitTest godoc
// @Summary Submit a student's answers for a test
// @Description Upserts the (test, student) attempt and replaces its stored answer set with the submitted list. Resubmitting replaces the previous submission wholesale.
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path int true "Test ID"
// @Param submission body dto.SubmitAttemptRequest true "Student ID and full answer list"
// @Success 200 {object} dto.AttemptDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests/{id}/attempts [post]
func (ctrl *AttemptController) SubmitTest(c *gin.Context) {
	testID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitAttemptRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.attemptSvc.SubmitTest(testID, req)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to submit test")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReplaceAnswers godoc
// @Summary Replace the full answer set of an attempt
// @Description The stored set ends up exactly equal to the submitted list; answers for unlisted questions are removed. An empty list empties the set.
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path int true "Attempt ID"
// @Param answers body dto.UpsertAnswersRequest true "Authoritative answer list"
// @Success 200 {array} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attempts/{id}/answers [put]
func (ctrl *AttemptController) ReplaceAnswers(c *gin.Context) {
	attemptID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpsertAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	answers, err := ctrl.attemptSvc.ReplaceAnswers(attemptID, req.Answers)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Failed to replace answers")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toAnswerResponses(answers))
}

// UpsertAnswers godoc
// @Summary Upsert answers of an attempt without removing unlisted ones
// @Description Incremental companion to the replace endpoint. Must not be used where stale answers have to disappear.
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path int true "Attempt ID"
// @Param answers body dto.UpsertAnswersRequest true "Answers to write"
// @Success 200 {array} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attempts/{id}/answers [patch]
func (ctrl *AttemptController) UpsertAnswers(c *gin.Context) {
	attemptID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpsertAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	answers, err := ctrl.attemptSvc.UpsertAnswers(attemptID, req.Answers)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Failed to upsert answers")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toAnswerResponses(answers))
}

// GetAttempt godoc
// @Summary Get one attempt with its answers and derived grade
// @Tags attempts
// @Produce json
// @Param id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{id} [get]
func (ctrl *AttemptController) GetAttempt(c *gin.Context) {
	attemptID, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptSvc.GetAttemptDetails(attemptID)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTestAttempts godoc
// @Summary List attempts for a test
// @Tags attempts
// @Produce json
// @Param id path int true "Test ID"
// @Success 200 {array} dto.AttemptSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests/{id}/attempts [get]
func (ctrl *AttemptController) GetTestAttempts(c *gin.Context) {
	testID, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptSvc.GetAttemptsForTest(testID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetStudentAttempts godoc
// @Summary List attempts of a student
// @Tags attempts
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {array} dto.AttemptSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /students/{id}/attempts [get]
func (ctrl *AttemptController) GetStudentAttempts(c *gin.Context) {
	studentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptSvc.GetAttemptsForStudent(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTest godoc
// @Summary Get a test with its questions
// @Tags tests
// @Produce json
// @Param id path int true "Test ID"
// @Success 200 {object} dto.TestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{id} [get]
func (ctrl *AttemptController) GetTest(c *gin.Context) {
	testID, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.testSvc.GetTestWithQuestions(testID)
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Test not found or error retrieving it"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAllTests godoc
// @Summary List all tests
// @Tags tests
// @Produce json
// @Param with_questions query bool false "Include questions in the response"
// @Success 200 {array} dto.TestResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests [get]
func (ctrl *AttemptController) GetAllTests(c *gin.Context) {
	withQuestions, _ := strconv.ParseBool(c.DefaultQuery("with_questions", "false"))

	resp, err := ctrl.testSvc.GetAllTests(withQuestions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve tests"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func toAnswerResponses(answers []model.AttemptAnswer) []dto.AnswerResponse {
	resps := make([]dto.AnswerResponse, 0, len(answers))
	for _, answer := range answers {
		var resp dto.AnswerResponse
		copier.Copy(&resp, &answer)
		resps = append(resps, resp)
	}
	return resps
}
