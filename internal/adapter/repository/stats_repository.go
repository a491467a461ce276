package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/repository"
)

const statsColumns = `id, user_id, total_words, bookmarked_words, mastered_words,
	quizzes_completed, average_quiz_score, average_word_mastery, last_studied_at,
	created_at, updated_at`

// NewStatisticsRepository constructs a pgx-backed statistics repository.
func NewStatisticsRepository(pool *pgxpool.Pool) repository.StatisticsRepository {
	return &statisticsRepository{pool: pool}
}

type statisticsRepository struct {
	pool *pgxpool.Pool
}

func (r *statisticsRepository) Get(ctx context.Context, userID string) (*entity.UserStatistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx,
		`SELECT `+statsColumns+` FROM user_statistics WHERE user_id = $1`, userID)
	stats, err := scanStats(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrStatisticsNotFound
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Upsert replaces the rollup row wholesale; the row is always a full
// recomputation, so last write wins is the intended behaviour.
func (r *statisticsRepository) Upsert(ctx context.Context, stats *entity.UserStatistics) (*entity.UserStatistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_statistics (`+statsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			total_words = EXCLUDED.total_words,
			bookmarked_words = EXCLUDED.bookmarked_words,
			mastered_words = EXCLUDED.mastered_words,
			quizzes_completed = EXCLUDED.quizzes_completed,
			average_quiz_score = EXCLUDED.average_quiz_score,
			average_word_mastery = EXCLUDED.average_word_mastery,
			last_studied_at = EXCLUDED.last_studied_at,
			updated_at = EXCLUDED.updated_at
		RETURNING `+statsColumns,
		stats.ID, stats.UserID, stats.TotalWords, stats.BookmarkedWords, stats.MasteredWords,
		stats.QuizzesCompleted, stats.AverageQuizScore, stats.AverageWordMastery,
		stats.LastStudiedAt, stats.CreatedAt, stats.UpdatedAt,
	)
	updated, err := scanStats(row)
	if err != nil {
		return nil, translatePgError(err)
	}
	return updated, nil
}

func (r *statisticsRepository) ActiveUserIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT user_id FROM words`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanStats(row pgx.Row) (*entity.UserStatistics, error) {
	var s entity.UserStatistics
	err := row.Scan(
		&s.ID, &s.UserID, &s.TotalWords, &s.BookmarkedWords, &s.MasteredWords,
		&s.QuizzesCompleted, &s.AverageQuizScore, &s.AverageWordMastery,
		&s.LastStudiedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
