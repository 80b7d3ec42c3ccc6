package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for the integrity violations the catalog maps
// onto domain errors.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
)

// IsDuplicateKeyErr reports a unique constraint violation on PostgreSQL or SQLite.
func IsDuplicateKeyErr(err error) bool {
	return matchesConstraint(err, gorm.ErrDuplicatedKey, sqlStateUniqueViolation, "UNIQUE constraint failed")
}

func IsCheckViolationErr(err error) bool {
	return matchesConstraint(err, gorm.ErrCheckConstraintViolated, sqlStateCheckViolation, "CHECK constraint failed")
}

func IsForeignKeyErr(err error) bool {
	return matchesConstraint(err, gorm.ErrForeignKeyViolated, sqlStateForeignKeyViolation, "FOREIGN KEY constraint failed")
}

// matchesConstraint checks the translated gorm sentinel, then the pgx
// SQLSTATE, then the SQLite message, which has no typed error through the
// pure-Go driver.
func matchesConstraint(err, sentinel error, sqlState, sqliteMsg string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sentinel) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlState
	}
	return strings.Contains(err.Error(), sqliteMsg)
}
