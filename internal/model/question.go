package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	TestID    uint           `json:"test_id" gorm:"not null;index"`
	Prompt    string         `json:"prompt" gorm:"type:text;not null"`
	AnswerKey string         `json:"answer_key,omitempty" gorm:"type:text"`
	Position  int            `json:"position" gorm:"not null"`
	MaxScore  float64        `json:"max_score" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
