package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/repository"
)

const wordColumns = `id, user_id, english, meaning, part_of_speech, example_sentence,
	source, difficulty, mastery_level, is_bookmarked, times_correct, times_wrong,
	last_reviewed_at, created_at, updated_at`

// NewWordRepository constructs a pgx-backed word repository.
func NewWordRepository(pool *pgxpool.Pool) repository.WordRepository {
	return &wordRepository{pool: pool}
}

type wordRepository struct {
	pool *pgxpool.Pool
}

func (r *wordRepository) Create(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO words (`+wordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+wordColumns,
		word.ID, word.UserID, word.English, word.Meaning, word.PartOfSpeech,
		word.ExampleSentence, word.Source, word.Difficulty, word.MasteryLevel,
		word.IsBookmarked, word.TimesCorrect, word.TimesWrong,
		word.LastReviewedAt, word.CreatedAt, word.UpdatedAt,
	)
	created, err := scanWord(row)
	if err != nil {
		return nil, translatePgError(err)
	}
	return created, nil
}

func (r *wordRepository) Update(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE words SET
			english = $3, meaning = $4, part_of_speech = $5, example_sentence = $6,
			difficulty = $7, mastery_level = $8, is_bookmarked = $9,
			times_correct = $10, times_wrong = $11, last_reviewed_at = $12, updated_at = $13
		WHERE id = $1 AND user_id = $2
		RETURNING `+wordColumns,
		word.ID, word.UserID, word.English, word.Meaning, word.PartOfSpeech,
		word.ExampleSentence, word.Difficulty, word.MasteryLevel, word.IsBookmarked,
		word.TimesCorrect, word.TimesWrong, word.LastReviewedAt, word.UpdatedAt,
	)
	updated, err := scanWord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrWordNotFound
	}
	if err != nil {
		return nil, translatePgError(err)
	}
	return updated, nil
}

func (r *wordRepository) GetByID(ctx context.Context, userID, id string) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx,
		`SELECT `+wordColumns+` FROM words WHERE id = $1 AND user_id = $2`, id, userID)
	word, err := scanWord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrWordNotFound
	}
	if err != nil {
		return nil, err
	}
	return word, nil
}

func (r *wordRepository) FindByEnglish(ctx context.Context, userID, english string) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx,
		`SELECT `+wordColumns+` FROM words WHERE user_id = $1 AND lower(english) = lower($2)`,
		userID, english)
	word, err := scanWord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return word, nil
}

func (r *wordRepository) List(ctx context.Context, filter *entity.WordFilter) ([]*entity.Word, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if filter == nil {
		return nil, 0, errors.New("word filter required")
	}

	where, args := buildWordPredicates(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM words WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + wordColumns + ` FROM words WHERE ` + where + ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var words []*entity.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, 0, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

func (r *wordRepository) Count(ctx context.Context, userID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM words WHERE user_id = $1`, userID).Scan(&total)
	return total, err
}

func (r *wordRepository) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM words WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrWordNotFound
	}
	return nil
}

func buildWordPredicates(filter *entity.WordFilter) (string, []any) {
	preds := []string{"user_id = $1"}
	args := []any{filter.UserID}

	add := func(cond string, value any) {
		args = append(args, value)
		preds = append(preds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Search != "" {
		add("(english ILIKE $%[1]d OR meaning ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	if filter.IsBookmarked != nil {
		add("is_bookmarked = $%d", *filter.IsBookmarked)
	}
	if filter.MasteryLevelMin != nil {
		add("mastery_level >= $%d", *filter.MasteryLevelMin)
	}
	if filter.MasteryLevelMax != nil {
		add("mastery_level <= $%d", *filter.MasteryLevelMax)
	}
	if filter.PartOfSpeech != "" {
		add("part_of_speech = $%d", filter.PartOfSpeech)
	}
	if filter.Difficulty != "" {
		add("difficulty = $%d", filter.Difficulty)
	}

	return strings.Join(preds, " AND "), args
}

func scanWord(row pgx.Row) (*entity.Word, error) {
	var w entity.Word
	err := row.Scan(
		&w.ID, &w.UserID, &w.English, &w.Meaning, &w.PartOfSpeech, &w.ExampleSentence,
		&w.Source, &w.Difficulty, &w.MasteryLevel, &w.IsBookmarked,
		&w.TimesCorrect, &w.TimesWrong, &w.LastReviewedAt, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
