package dto

// QuestionForTestRequest is used when creating questions as part of a new test.
type QuestionForTestRequest struct {
	Prompt    string  `json:"prompt" binding:"required"`
	AnswerKey string  `json:"answer_key"`
	Position  int     `json:"position" binding:"required,min=1"`
	MaxScore  float64 `json:"max_score" binding:"required,gt=0"`
}

type CreateTestRequest struct {
	Title       string                   `json:"title" binding:"required"`
	Subject     string                   `json:"subject"`
	Description string                   `json:"description"`
	SchoolID    uint                     `json:"school_id" binding:"required"`
	Questions   []QuestionForTestRequest `json:"questions" binding:"omitempty,dive"`
}

type UpdateTestRequest struct {
	Title       string `json:"title" binding:"required"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type CreateQuestionRequest struct {
	TestID    uint    `json:"test_id" binding:"required"`
	Prompt    string  `json:"prompt" binding:"required"`
	AnswerKey string  `json:"answer_key"`
	Position  int     `json:"position" binding:"required,min=1"`
	MaxScore  float64 `json:"max_score" binding:"required,gt=0"`
}

type CreateStudentRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	SchoolID uint   `json:"school_id" binding:"required"`
}

// AnswerSubmission is one scored answer inside a submission. Scores arrive
// already graded by the teacher.
type AnswerSubmission struct {
	QuestionID uint    `json:"question_id" binding:"required"`
	AnswerText string  `json:"answer_text"`
	Correct    bool    `json:"correct"`
	Score      float64 `json:"score"`
}

// SubmitAttemptRequest carries the authoritative full answer set for one
// (test, student) attempt. An empty Answers list is legal and empties the
// stored set.
type SubmitAttemptRequest struct {
	StudentID uint               `json:"student_id" binding:"required"`
	Answers   []AnswerSubmission `json:"answers"`
}

// UpsertAnswersRequest is the incremental companion to SubmitAttemptRequest:
// listed answers are written, unlisted ones are left untouched.
type UpsertAnswersRequest struct {
	Answers []AnswerSubmission `json:"answers" binding:"required"`
}

// ProvisionTeacherRequest is validated by the provisioning service itself,
// before any external call; binding stays shape-only so the service owns the
// field-level rules and their error wording.
type ProvisionTeacherRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
}

type RepairProfileRequest struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
}
