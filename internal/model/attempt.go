package model

import (
	"time"
)

// Attempt is one student's submission record for one test. The store enforces
// one attempt per (test, student) pair; submissions for an existing pair
// replace the row via the conflict-key upsert rather than inserting a second one.
type Attempt struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	TestID      uint            `json:"test_id" gorm:"not null;uniqueIndex:ux_attempt_test_student,priority:1"`
	Test        Test            `json:"test,omitempty" gorm:"foreignKey:TestID"`
	StudentID   uint            `json:"student_id" gorm:"not null;uniqueIndex:ux_attempt_test_student,priority:2"`
	Student     Student         `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	TotalScore  *float64        `json:"total_score,omitempty"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Answers     []AttemptAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
