package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/quiz"
	"github.com/wordsnap/wordsnap/internal/repository"
)

// WordUsecase encapsulates business logic for managing vocabulary entries.
type WordUsecase interface {
	CollectWord(ctx context.Context, userID string, word *entity.Word) (*entity.Word, error)
	UpdateWord(ctx context.Context, userID string, word *entity.Word) (*entity.Word, error)
	GetWord(ctx context.Context, userID, id string) (*entity.Word, error)
	ListWords(ctx context.Context, filter *entity.WordFilter) ([]*entity.Word, int64, error)
	DeleteWord(ctx context.Context, userID, id string) error
	ToggleBookmark(ctx context.Context, userID, id string) (*entity.Word, error)
	// RecordAnswer applies one quiz outcome to the word's mastery state and
	// persists the fully recomputed result.
	RecordAnswer(ctx context.Context, userID, id string, correct bool) (*entity.Word, error)
	BookmarkedWords(ctx context.Context, userID string) ([]*entity.Word, error)
	MasteredWords(ctx context.Context, userID string) ([]*entity.Word, error)
	LearningWords(ctx context.Context, userID string) ([]*entity.Word, error)
	CountWords(ctx context.Context, userID string) (int64, error)
}

// NewWordUsecase wires the repository with default behaviour.
func NewWordUsecase(repo repository.WordRepository) WordUsecase {
	return &wordUsecase{
		repo:  repo,
		clock: time.Now,
		newID: uuid.NewString,
	}
}

type wordUsecase struct {
	repo  repository.WordRepository
	clock func() time.Time
	newID func() string
}

func (u *wordUsecase) CollectWord(ctx context.Context, userID string, word *entity.Word) (*entity.Word, error) {
	if word == nil {
		return nil, entity.ErrInvalidWordText
	}
	english := strings.TrimSpace(word.English)
	if english == "" || strings.TrimSpace(word.Meaning) == "" {
		return nil, entity.ErrInvalidWordText
	}

	existing, err := u.repo.FindByEnglish(ctx, userID, english)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entity.ErrDuplicateWord
	}

	copy := *word
	copy.ID = u.newID()
	copy.UserID = userID
	copy.English = english
	// Fresh words always start unlearned; mastery is derived, never supplied.
	copy.MasteryLevel = 0
	copy.TimesCorrect = 0
	copy.TimesWrong = 0
	copy.IsBookmarked = false
	copy.LastReviewedAt = nil
	copy.Normalize(u.clock())

	return u.repo.Create(ctx, &copy)
}

func (u *wordUsecase) UpdateWord(ctx context.Context, userID string, word *entity.Word) (*entity.Word, error) {
	if word == nil || word.ID == "" {
		return nil, entity.ErrWordNotFound
	}

	existing, err := u.repo.GetByID(ctx, userID, word.ID)
	if err != nil {
		return nil, err
	}

	if text := strings.TrimSpace(word.English); text != "" {
		existing.English = text
	}
	if meaning := strings.TrimSpace(word.Meaning); meaning != "" {
		existing.Meaning = meaning
	}
	if word.PartOfSpeech != "" {
		existing.PartOfSpeech = word.PartOfSpeech
	}
	if word.ExampleSentence != "" {
		existing.ExampleSentence = word.ExampleSentence
	}
	if word.Difficulty != "" {
		existing.Difficulty = word.Difficulty
	}
	existing.Normalize(u.clock())

	return u.repo.Update(ctx, existing)
}

func (u *wordUsecase) GetWord(ctx context.Context, userID, id string) (*entity.Word, error) {
	if id == "" {
		return nil, entity.ErrWordNotFound
	}
	return u.repo.GetByID(ctx, userID, id)
}

func (u *wordUsecase) ListWords(ctx context.Context, filter *entity.WordFilter) ([]*entity.Word, int64, error) {
	return u.repo.List(ctx, filter)
}

func (u *wordUsecase) DeleteWord(ctx context.Context, userID, id string) error {
	if id == "" {
		return entity.ErrWordNotFound
	}
	return u.repo.Delete(ctx, userID, id)
}

func (u *wordUsecase) ToggleBookmark(ctx context.Context, userID, id string) (*entity.Word, error) {
	word, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	word.IsBookmarked = !word.IsBookmarked
	word.UpdatedAt = u.clock()
	return u.repo.Update(ctx, word)
}

func (u *wordUsecase) RecordAnswer(ctx context.Context, userID, id string, correct bool) (*entity.Word, error) {
	word, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	quiz.Apply(word, correct, u.clock())
	return u.repo.Update(ctx, word)
}

func (u *wordUsecase) BookmarkedWords(ctx context.Context, userID string) ([]*entity.Word, error) {
	bookmarked := true
	words, _, err := u.repo.List(ctx, &entity.WordFilter{UserID: userID, IsBookmarked: &bookmarked})
	return words, err
}

func (u *wordUsecase) MasteredWords(ctx context.Context, userID string) ([]*entity.Word, error) {
	min := int32(entity.MasteredThreshold)
	words, _, err := u.repo.List(ctx, &entity.WordFilter{UserID: userID, MasteryLevelMin: &min})
	return words, err
}

func (u *wordUsecase) LearningWords(ctx context.Context, userID string) ([]*entity.Word, error) {
	max := int32(entity.MasteredThreshold - 1)
	words, _, err := u.repo.List(ctx, &entity.WordFilter{UserID: userID, MasteryLevelMax: &max})
	return words, err
}

func (u *wordUsecase) CountWords(ctx context.Context, userID string) (int64, error) {
	return u.repo.Count(ctx, userID)
}
