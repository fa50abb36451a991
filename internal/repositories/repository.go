package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "helpdesk-system/pkg/errors"
)

// Коды ошибок PostgreSQL, которые мы переводим в доменные конфликты.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translatePgError переводит ошибки драйвера в ошибки уровня приложения:
// нарушение уникальности и ссылочной целостности становятся 409.
func translatePgError(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return apperrors.Conflict(conflictMessage)
		}
	}
	return err
}
