package storage

import (
	"errors"

	"github.com/jackc/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pgErrorCode(err) == uniqueViolationCode
}

func IsForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == foreignKeyViolationCode
}

// IsIntegrityError reports whether err is a unique or foreign-key constraint
// violation raised by the backend.
func IsIntegrityError(err error) bool {
	return IsUniqueViolation(err) || IsForeignKeyViolation(err)
}
