package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes that can surface from concurrent booking attempts.
const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict reports whether err is a unique or exclusion
// constraint violation, i.e. a concurrent insert won the slot.
func IsExclusionConflict(err error) bool {
	code := pgCode(err)
	return code == pgUniqueViolation || code == pgExclusionViolation
}

func IsSerializationFailure(err error) bool {
	return pgCode(err) == pgSerializationFailure
}
