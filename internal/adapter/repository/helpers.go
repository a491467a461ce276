package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wordsnap/wordsnap/internal/entity"
)

// translatePgError maps low-level postgres failures onto domain errors so
// usecases never see driver types.
func translatePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return entity.ErrDuplicateWord
		}
	}
	return err
}
