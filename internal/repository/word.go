package repository

import (
	"context"

	"github.com/wordsnap/wordsnap/internal/entity"
)

// WordRepository abstracts persistence for vocabulary entries to keep
// usecases storage agnostic.
type WordRepository interface {
	Create(ctx context.Context, word *entity.Word) (*entity.Word, error)
	Update(ctx context.Context, word *entity.Word) (*entity.Word, error)
	GetByID(ctx context.Context, userID, id string) (*entity.Word, error)
	FindByEnglish(ctx context.Context, userID, english string) (*entity.Word, error)
	List(ctx context.Context, filter *entity.WordFilter) ([]*entity.Word, int64, error)
	Count(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}
