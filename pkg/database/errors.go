package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes the API maps to user-facing strings. Everything
// else falls back to a generic message.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgUndefinedTable      = "42P01"
	pgInsufficientPriv    = "42501"
)

// MapError turns a repository error into the string shown to the admin.
func MapError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "The requested record was not found"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return "A record with the same value already exists"
		case pgForeignKeyViolation:
			return "The referenced record does not exist"
		case pgNotNullViolation:
			return "A required field is missing"
		case pgUndefinedTable:
			return "Storage is not ready yet. Please try again later"
		case pgInsufficientPriv:
			return "You do not have permission to perform this action"
		}
	}

	return "Something went wrong. Please try again"
}
