package database

import (
	"errors"

	"github.com/Siroshun09/serrors"
)

// DBError marks any backing-store failure. Operations treat it as fatal for
// the current request; nothing in this service retries it.
type DBError struct {
	cause error
}

func NewDBErrorWithStackTrace(cause error) error {
	return serrors.WithStackTrace(DBError{cause: cause})
}

func (e DBError) Error() string {
	if e.cause == nil {
		return "database error"
	}
	return "database error: " + e.cause.Error()
}

func (e DBError) Unwrap() error {
	return e.cause
}

func IsDBError(err error) bool {
	var target DBError
	return errors.As(err, &target)
}
