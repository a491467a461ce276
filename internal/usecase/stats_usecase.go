package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/repository"
)

// StatsUsecase serves the learning dashboard and maintains the per-user
// statistics rollup.
type StatsUsecase interface {
	Statistics(ctx context.Context, userID string) (*entity.UserStatistics, error)
	Dashboard(ctx context.Context, userID string) (*entity.Dashboard, error)
	Progress(ctx context.Context, userID string) (*entity.LearningProgress, error)
	Streak(ctx context.Context, userID string) (*entity.StudyStreak, error)
	// Refresh recomputes the rollup from words and quiz results.
	Refresh(ctx context.Context, userID string) (*entity.UserStatistics, error)
	RefreshAll(ctx context.Context) error
}

// NewStatsUsecase wires the repositories with default behaviour.
func NewStatsUsecase(words repository.WordRepository, results repository.QuizResultRepository, stats repository.StatisticsRepository) StatsUsecase {
	return &statsUsecase{
		words:   words,
		results: results,
		stats:   stats,
		clock:   time.Now,
		newID:   uuid.NewString,
	}
}

type statsUsecase struct {
	words   repository.WordRepository
	results repository.QuizResultRepository
	stats   repository.StatisticsRepository
	clock   func() time.Time
	newID   func() string
}

func (u *statsUsecase) Statistics(ctx context.Context, userID string) (*entity.UserStatistics, error) {
	stats, err := u.stats.Get(ctx, userID)
	if errors.Is(err, entity.ErrStatisticsNotFound) {
		// First read for this user: build the rollup on the spot.
		return u.Refresh(ctx, userID)
	}
	return stats, err
}

func (u *statsUsecase) Dashboard(ctx context.Context, userID string) (*entity.Dashboard, error) {
	stats, err := u.Statistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &entity.Dashboard{
		TotalWords:       stats.TotalWords,
		BookmarkedWords:  stats.BookmarkedWords,
		MasteredWords:    stats.MasteredWords,
		LearningWords:    stats.TotalWords - stats.MasteredWords,
		QuizzesCompleted: stats.QuizzesCompleted,
		AverageScore:     stats.AverageQuizScore,
		AverageMastery:   stats.AverageWordMastery,
		LastStudiedAt:    stats.LastStudiedAt,
	}, nil
}

func (u *statsUsecase) Progress(ctx context.Context, userID string) (*entity.LearningProgress, error) {
	stats, err := u.Statistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress := &entity.LearningProgress{
		TotalWords:    stats.TotalWords,
		MasteredWords: stats.MasteredWords,
	}
	if stats.TotalWords > 0 {
		progress.ProgressPercentage = int32(math.Round(100 * float64(stats.MasteredWords) / float64(stats.TotalWords)))
	}
	return progress, nil
}

// Streak counts consecutive calendar days, ending today or yesterday, with
// at least one completed quiz.
func (u *statsUsecase) Streak(ctx context.Context, userID string) (*entity.StudyStreak, error) {
	results, err := u.results.ListResults(ctx, &repository.ListQuizResultQuery{UserID: userID})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &entity.StudyStreak{}, nil
	}

	days := lo.Uniq(lo.Map(results, func(r *entity.QuizResult, _ int) string {
		return r.CompletedAt.Format("2006-01-02")
	}))
	studied := lo.SliceToMap(days, func(d string) (string, struct{}) { return d, struct{}{} })

	today := u.clock()
	cursor := today
	if _, ok := studied[dayKey(cursor)]; !ok {
		// A streak survives until the end of the current day.
		cursor = cursor.AddDate(0, 0, -1)
	}

	var streak int32
	for {
		if _, ok := studied[dayKey(cursor)]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	last := results[0].CompletedAt
	for _, r := range results {
		if r.CompletedAt.After(last) {
			last = r.CompletedAt
		}
	}
	return &entity.StudyStreak{CurrentStreak: streak, LastStudyDate: &last}, nil
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func (u *statsUsecase) Refresh(ctx context.Context, userID string) (*entity.UserStatistics, error) {
	words, _, err := u.words.List(ctx, &entity.WordFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	results, err := u.results.ListResults(ctx, &repository.ListQuizResultQuery{UserID: userID})
	if err != nil {
		return nil, err
	}

	now := u.clock()
	stats := &entity.UserStatistics{
		ID:               u.newID(),
		UserID:           userID,
		TotalWords:       int32(len(words)),
		QuizzesCompleted: int32(len(results)),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	stats.BookmarkedWords = int32(lo.CountBy(words, func(w *entity.Word) bool { return w.IsBookmarked }))
	stats.MasteredWords = int32(lo.CountBy(words, func(w *entity.Word) bool { return w.Mastered() }))

	if len(words) > 0 {
		sum := lo.SumBy(words, func(w *entity.Word) int32 { return w.MasteryLevel })
		stats.AverageWordMastery = int32(math.Round(float64(sum) / float64(len(words))))
	}
	if len(results) > 0 {
		sum := lo.SumBy(results, func(r *entity.QuizResult) int32 { return r.ScorePercentage })
		stats.AverageQuizScore = int32(math.Round(float64(sum) / float64(len(results))))
		last := lo.MaxBy(results, func(a, b *entity.QuizResult) bool {
			return a.CompletedAt.After(b.CompletedAt)
		})
		stats.LastStudiedAt = &last.CompletedAt
	}

	return u.stats.Upsert(ctx, stats)
}

func (u *statsUsecase) RefreshAll(ctx context.Context) error {
	userIDs, err := u.stats.ActiveUserIDs(ctx)
	if err != nil {
		return err
	}
	for _, userID := range userIDs {
		if _, err := u.Refresh(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}
