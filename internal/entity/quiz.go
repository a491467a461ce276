package entity

import (
	"strings"
	"time"
)

// QuizType selects one of the three review modes.
type QuizType string

const (
	QuizTypeMultipleChoice QuizType = "multiple_choice"
	QuizTypeFillBlank      QuizType = "fill_blank"
	QuizTypeMatching       QuizType = "matching"
)

// ParseQuizType converts an arbitrary string into a supported quiz type.
func ParseQuizType(s string) (QuizType, error) {
	switch QuizType(strings.ToLower(strings.TrimSpace(s))) {
	case QuizTypeMultipleChoice:
		return QuizTypeMultipleChoice, nil
	case QuizTypeFillBlank:
		return QuizTypeFillBlank, nil
	case QuizTypeMatching:
		return QuizTypeMatching, nil
	default:
		return "", ErrInvalidQuizType
	}
}

// QuizResult is the persisted record of one completed quiz session.
type QuizResult struct {
	ID              string
	UserID          string
	QuizType        QuizType
	TotalQuestions  int32
	CorrectAnswers  int32
	ScorePercentage int32
	Difficulty      Difficulty
	CompletedAt     time.Time
}

// WordAnswer is the per-question record attached to a quiz result.
type WordAnswer struct {
	ID           string
	QuizResultID string
	WordID       string
	UserAnswer   string
	IsCorrect    bool
	AnsweredAt   time.Time
}

// QuizTypeStats aggregates a user's performance in one quiz mode.
type QuizTypeStats struct {
	TotalQuizzes int32
	AverageScore int32
	BestScore    int32
}

// TrendPoint is one entry in the recent score trend.
type TrendPoint struct {
	CompletedAt     time.Time
	ScorePercentage int32
	QuizType        QuizType
}
