package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"planforge/internal/domain"
)

// SQLSTATE codes the repositories translate
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgDuplicateError reports a unique constraint violation
func IsPgDuplicateError(err error) bool {
	return sqlState(err) == codeUniqueViolation
}

// IsPgForeignKeyError reports a foreign key violation
func IsPgForeignKeyError(err error) bool {
	return sqlState(err) == codeForeignKeyViolation
}

// IsPgNoRowsError reports a single-row query that matched nothing
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// CheckViolation converts a CHECK constraint failure (unknown type, status,
// mode or source) into a validation error naming the constraint. Other errors
// are returned unchanged.
func CheckViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeCheckViolation {
		return fmt.Errorf("%w: value rejected by %s", domain.ErrValidation, pgErr.ConstraintName)
	}
	return err
}
