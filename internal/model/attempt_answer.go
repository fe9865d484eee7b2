package model

import (
	"time"
)

// AttemptAnswer is one scored response within an attempt, keyed by
// (attempt_id, question_id). The live set for an attempt always mirrors the
// latest submitted answer list; reconciliation deletes before it upserts so
// no row from an earlier submission survives.
type AttemptAnswer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	AttemptID  uint      `json:"attempt_id" gorm:"not null;uniqueIndex:ux_answer_attempt_question,priority:1"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:ux_answer_attempt_question,priority:2"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerText string    `json:"answer_text" gorm:"type:text;not null"`
	Correct    bool      `json:"correct"`
	Score      float64   `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
