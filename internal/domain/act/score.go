package act

import (
	"fmt"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
)

// NumQuestions is the fixed length of the Asthma Control Test.
const NumQuestions = 5

const (
	minAnswer = 1
	maxAnswer = 5
)

// SumScore validates the five ACT answers and returns their total.
// Each answer is on a 1 to 5 scale, so the total ranges 5 to 25.
func SumScore(answers []int) (int, error) {
	if len(answers) != NumQuestions {
		return 0, fmt.Errorf("expected %d answers, got %d: %w", NumQuestions, len(answers), apperror.ErrValidation)
	}
	total := 0
	for i, a := range answers {
		if a < minAnswer || a > maxAnswer {
			return 0, fmt.Errorf("answer %d out of range [%d,%d]: %w", i+1, minAnswer, maxAnswer, apperror.ErrValidation)
		}
		total += a
	}
	return total, nil
}

// Interpretation buckets an ACT total into the clinical bands used on
// the printed questionnaire.
func Interpretation(total int) string {
	switch {
	case total >= 20:
		return "Well controlled"
	case total >= 16:
		return "Not well controlled"
	default:
		return "Very poorly controlled"
	}
}
