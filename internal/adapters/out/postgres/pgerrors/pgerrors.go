// Package pgerrors classifies PostgreSQL errors returned through GORM.
package pgerrors

import (
	"errors"
	"fmt"

	"paquexpress/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsIntegrityViolation reports whether err is a unique, foreign key, check or
// not-null violation.
func IsIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation,
		pgerrcode.ForeignKeyViolation,
		pgerrcode.CheckViolation,
		pgerrcode.NotNullViolation:
		return true
	default:
		return false
	}
}

// ConstraintName returns the violated constraint, or "" for other errors.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// AsConflict turns an integrity violation into an errs.ConflictError carrying
// reason and keeps any other error unchanged. The cause names the violated
// constraint for logs; clients only see reason.
func AsConflict(err error, reason string) error {
	if !IsIntegrityViolation(err) {
		return err
	}
	if name := ConstraintName(err); name != "" {
		err = fmt.Errorf("violates %s: %w", name, err)
	}
	return errs.NewConflictErrorWithCause(reason, err)
}
