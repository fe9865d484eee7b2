package service

import (
	"fmt"
	"math"
)

// GradeService derives display grades from raw attempt totals.
type GradeService interface {
	Percentage(total, max float64) (float64, error)
	Letter(percentage float64) string
}

type gradeService struct{}

func NewGradeService() GradeService {
	return &gradeService{}
}

// Percentage returns total/max on a 0-100 scale, rounded to one decimal.
func (s *gradeService) Percentage(total, max float64) (float64, error) {
	if max <= 0 {
		return 0, fmt.Errorf("max score must be positive, got %.2f", max)
	}
	if total < 0 || total > max {
		return 0, fmt.Errorf("total score %.2f is out of valid range (0-%.2f)", total, max)
	}
	return math.Round(total/max*1000) / 10, nil
}

func (s *gradeService) Letter(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}
