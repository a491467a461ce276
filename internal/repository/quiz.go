package repository

import (
	"context"

	"github.com/wordsnap/wordsnap/internal/entity"
)

// ListQuizResultQuery holds parameters for listing quiz results.
type ListQuizResultQuery struct {
	UserID   string
	QuizType entity.QuizType
	Limit    int32
}

// QuizResultRepository persists completed quiz sessions and their per-word
// answer records.
type QuizResultRepository interface {
	CreateResult(ctx context.Context, result *entity.QuizResult) (*entity.QuizResult, error)
	CreateAnswers(ctx context.Context, answers []*entity.WordAnswer) error
	GetResult(ctx context.Context, userID, id string) (*entity.QuizResult, error)
	ListResults(ctx context.Context, query *ListQuizResultQuery) ([]*entity.QuizResult, error)
	ListAnswers(ctx context.Context, quizResultID string) ([]*entity.WordAnswer, error)
}
