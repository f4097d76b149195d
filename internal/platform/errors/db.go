package errors

// Driver-agnostic wrappers: repos run against either backend, so classify
// through whichever driver produced the error

import "fmt"

// FromDB wraps a database error with the ErrorCode the driver maps to.
// If err is nil, returns nil
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	if code, ok := SQLiteErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromDBf is the formatted variant of FromDB
func FromDBf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromDB(err, fmt.Sprintf(format, a...))
}

// IsDBRetryable reports whether either driver considers the error transient
func IsDBRetryable(err error) bool {
	return IsRetryable(err) || IsSQLiteRetryable(err)
}
