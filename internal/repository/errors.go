package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

// uniqueViolation returns the violated constraint when err is a unique
// violation raised by Postgres.
func uniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return "", false
	}
	return pgErr.ConstraintName, true
}

// noRows reports an empty single-row result.
func noRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }
