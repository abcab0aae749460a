// Package dberr sorts driver and gorm errors into apperr kinds.
package dberr

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
)

// postgres SQLSTATEs that a caller may simply retry
var transientStates = map[string]string{
	"55P03": "lock_timeout",
	"57014": "statement_timeout",
	"40001": "serialization_failure",
	"40P01": "deadlock_detected",
	"53300": "too_many_connections",
	"08006": "connection_failure",
	"08003": "connection_failure",
}

// Classify maps a persistence error onto the apperr taxonomy. Errors that
// already carry a kind pass through untouched.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.Transient("request_aborted", err)
	}
	if errors.Is(err, driver.ErrBadConn) {
		return apperr.Transient("connection_failure", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if code, ok := transientStates[pgErr.Code]; ok {
			return apperr.Transient(code, err)
		}
	}

	if dup, _ := DuplicateKey(err); dup {
		return apperr.Conflict("duplicate_key", "Conflicting write")
	}

	// sqlite reports a busy database instead of a lock timeout
	if strings.Contains(err.Error(), "database is locked") {
		return apperr.Transient("lock_timeout", err)
	}

	return apperr.Internal("persistence_failure", err)
}

// DuplicateKey reports a unique violation and, when the driver exposes it,
// which constraint or column tripped.
func DuplicateKey(err error) (bool, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true, pgErr.ConstraintName + " " + pgErr.Detail
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, ""
	}
	if msg := err.Error(); strings.Contains(msg, "UNIQUE constraint failed") {
		return true, msg
	}
	return false, ""
}
