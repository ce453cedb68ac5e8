package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"

	apperrors "github.com/segyhp/lending-engine/pkg/errors"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is wrapped when an insert violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key")
)

const pqUniqueViolation = "23505"

// classify maps driver errors onto the application error kinds.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return apperrors.WrapConnectionError(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperrors.WrapConnectionError(err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "28":
			return apperrors.WrapAuthError(err)
		case "08":
			return apperrors.WrapConnectionError(err)
		case "23":
			if pqErr.Code == pqUniqueViolation {
				err = errors.Join(ErrDuplicateKey, err)
			}
			return apperrors.MarkPermanent(apperrors.WrapDatabaseError(err))
		}
	}

	if isSQLiteUniqueViolation(err) {
		return apperrors.MarkPermanent(apperrors.WrapDatabaseError(errors.Join(ErrDuplicateKey, err)))
	}

	return apperrors.WrapDatabaseError(err)
}
