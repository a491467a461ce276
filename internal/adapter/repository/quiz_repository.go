package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/repository"
)

const resultColumns = `id, user_id, quiz_type, total_questions, correct_answers,
	score_percentage, difficulty, completed_at`

// NewQuizResultRepository constructs a pgx-backed quiz result repository.
func NewQuizResultRepository(pool *pgxpool.Pool) repository.QuizResultRepository {
	return &quizResultRepository{pool: pool}
}

type quizResultRepository struct {
	pool *pgxpool.Pool
}

func (r *quizResultRepository) CreateResult(ctx context.Context, result *entity.QuizResult) (*entity.QuizResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO quiz_results (`+resultColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+resultColumns,
		result.ID, result.UserID, result.QuizType, result.TotalQuestions,
		result.CorrectAnswers, result.ScorePercentage, result.Difficulty, result.CompletedAt,
	)
	created, err := scanResult(row)
	if err != nil {
		return nil, translatePgError(err)
	}
	return created, nil
}

// CreateAnswers inserts the per-word answer rows in one batch; the batch is
// all-or-nothing from the caller's perspective.
func (r *quizResultRepository) CreateAnswers(ctx context.Context, answers []*entity.WordAnswer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(answers) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range answers {
		batch.Queue(`
			INSERT INTO word_quiz_answers (id, quiz_result_id, word_id, user_answer, is_correct, answered_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID, a.QuizResultID, a.WordID, a.UserAnswer, a.IsCorrect, a.AnsweredAt,
		)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range answers {
		if _, err := results.Exec(); err != nil {
			return translatePgError(err)
		}
	}
	return nil
}

func (r *quizResultRepository) GetResult(ctx context.Context, userID, id string) (*entity.QuizResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM quiz_results WHERE id = $1 AND user_id = $2`, id, userID)
	result, err := scanResult(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrQuizResultNotFound
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *quizResultRepository) ListResults(ctx context.Context, query *repository.ListQuizResultQuery) ([]*entity.QuizResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if query == nil {
		return nil, errors.New("list query required")
	}

	sql := `SELECT ` + resultColumns + ` FROM quiz_results WHERE user_id = $1`
	args := []any{query.UserID}
	if query.QuizType != "" {
		args = append(args, query.QuizType)
		sql += ` AND quiz_type = $2`
	}
	sql += ` ORDER BY completed_at DESC, id`
	if query.Limit > 0 {
		args = append(args, query.Limit)
		if query.QuizType != "" {
			sql += ` LIMIT $3`
		} else {
			sql += ` LIMIT $2`
		}
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*entity.QuizResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func (r *quizResultRepository) ListAnswers(ctx context.Context, quizResultID string) ([]*entity.WordAnswer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, quiz_result_id, word_id, user_answer, is_correct, answered_at
		FROM word_quiz_answers
		WHERE quiz_result_id = $1
		ORDER BY answered_at, id`, quizResultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*entity.WordAnswer
	for rows.Next() {
		var a entity.WordAnswer
		if err := rows.Scan(&a.ID, &a.QuizResultID, &a.WordID, &a.UserAnswer, &a.IsCorrect, &a.AnsweredAt); err != nil {
			return nil, err
		}
		answers = append(answers, &a)
	}
	return answers, rows.Err()
}

func scanResult(row pgx.Row) (*entity.QuizResult, error) {
	var r entity.QuizResult
	err := row.Scan(
		&r.ID, &r.UserID, &r.QuizType, &r.TotalQuestions, &r.CorrectAnswers,
		&r.ScorePercentage, &r.Difficulty, &r.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
