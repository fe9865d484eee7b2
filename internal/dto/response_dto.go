package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

// ProvisioningErrorResponse is the 500 payload for the partial-success
// terminal: the identity exists, the profile does not. Carrying the orphaned
// id and email distinguishes it from a total failure and makes the
// profile-only repair possible.
type ProvisioningErrorResponse struct {
	Error      string `json:"error"`
	AuthUserID string `json:"auth_user_id"`
	Email      string `json:"email"`
}

type QuestionResponse struct {
	ID        uint      `json:"id"`
	TestID    uint      `json:"test_id"`
	Prompt    string    `json:"prompt"`
	AnswerKey string    `json:"answer_key,omitempty"`
	Position  int       `json:"position"`
	MaxScore  float64   `json:"max_score"`
	CreatedAt time.Time `json:"created_at"`
}

type TestResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Subject     string             `json:"subject,omitempty"`
	Description string             `json:"description,omitempty"`
	SchoolID    uint               `json:"school_id"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type StudentResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	SchoolID  uint      `json:"school_id"`
	CreatedAt time.Time `json:"created_at"`
}

type AnswerResponse struct {
	ID         uint             `json:"id"`
	AttemptID  uint             `json:"attempt_id"`
	QuestionID uint             `json:"question_id"`
	Question   QuestionResponse `json:"question,omitempty"`
	AnswerText string           `json:"answer_text"`
	Correct    bool             `json:"correct"`
	Score      float64          `json:"score"`
}

type AttemptDetailResponse struct {
	ID          uint             `json:"id"`
	TestID      uint             `json:"test_id"`
	TestTitle   string           `json:"test_title,omitempty"`
	StudentID   uint             `json:"student_id"`
	StudentName string           `json:"student_name,omitempty"`
	TotalScore  *float64         `json:"total_score,omitempty"`
	Percentage  *float64         `json:"percentage,omitempty"`
	LetterGrade string           `json:"letter_grade,omitempty"`
	SubmittedAt time.Time        `json:"submitted_at"`
	Answers     []AnswerResponse `json:"answers"`
}

type AttemptSummaryResponse struct {
	ID          uint      `json:"id"`
	TestID      uint      `json:"test_id"`
	StudentID   uint      `json:"student_id"`
	TotalScore  *float64  `json:"total_score,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type UserProfileResponse struct {
	ID       string  `json:"id"`
	SchoolID uint    `json:"school_id"`
	Role     string  `json:"role"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
}

// ProvisionTeacherResponse is the success terminal of the provisioning flow:
// the created identity plus the synced profile row.
type ProvisionTeacherResponse struct {
	AuthUserID string              `json:"auth_user_id"`
	Email      string              `json:"email"`
	Profile    UserProfileResponse `json:"profile"`
}

// OrphanIdentityResponse is an auth identity with no linked profile row.
type OrphanIdentityResponse struct {
	AuthUserID string `json:"auth_user_id"`
	Email      string `json:"email"`
}
