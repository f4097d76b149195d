package errors

// SQLite-specific helpers for mapping modernc driver errors to project ErrorCode and retry semantics

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	sqlite3 "modernc.org/sqlite"
)

// Result codes we care about (primary and extended)
const (
	sqliteErrBusy    = 5
	sqliteErrLocked  = 6
	sqliteErrFull    = 13
	sqliteErrTooBig  = 18
	sqliteErrMisuse  = 21
	sqliteErrConstr  = 19
	sqliteErrCheck   = 275  // SQLITE_CONSTRAINT_CHECK
	sqliteErrFK      = 787  // SQLITE_CONSTRAINT_FOREIGNKEY
	sqliteErrNotNull = 1299 // SQLITE_CONSTRAINT_NOTNULL
	sqliteErrPK      = 1555 // SQLITE_CONSTRAINT_PRIMARYKEY
	sqliteErrUnique  = 2067 // SQLITE_CONSTRAINT_UNIQUE
)

// ExtractSQLiteError returns (*sqlite3.Error, true) if the root cause is a driver error
func ExtractSQLiteError(err error) (*sqlite3.Error, bool) {
	var se *sqlite3.Error
	if stderrs.As(Root(err), &se) {
		return se, true
	}
	return nil, false
}

// sqliteErrorCode maps a raw result code to a project ErrorCode
func sqliteErrorCode(code int) ErrorCode {
	switch code {
	case sqliteErrUnique, sqliteErrPK:
		return ErrorCodeDuplicateKey
	case sqliteErrFK:
		// input referenced a missing row: classify as invalid input
		return ErrorCodeInvalidArgument
	case sqliteErrNotNull, sqliteErrCheck:
		return ErrorCodeValidation
	case sqliteErrTooBig, sqliteErrMisuse:
		return ErrorCodeInvalidArgument
	case sqliteErrBusy, sqliteErrLocked:
		// retryable contention on the single writer
		return ErrorCodeDB
	case sqliteErrFull:
		return ErrorCodeUnavailable
	}

	// primary-code fallback for extended codes not listed above
	switch code & 0xff {
	case sqliteErrConstr:
		return ErrorCodeValidation
	case sqliteErrBusy, sqliteErrLocked:
		return ErrorCodeDB
	}

	return ErrorCodeDB
}

// SQLiteErrorCode maps a driver error to an ErrorCode with an ok flag
// !ok means err wasn't a driver error; caller may fall back to generic handling
func SQLiteErrorCode(err error) (ErrorCode, bool) {
	se, ok := ExtractSQLiteError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	return sqliteErrorCode(se.Code()), true
}

// FromSQLite wraps a driver error with a mapped ErrorCode and message.
// If err is nil, returns nil
func FromSQLite(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := SQLiteErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromSQLitef is the formatted variant of FromSQLite
func FromSQLitef(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromSQLite(err, fmt.Sprintf(format, a...))
}

// IsSQLiteRetryable reports whether the error is transient writer contention
// (SQLITE_BUSY / SQLITE_LOCKED) worth retrying
func IsSQLiteRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if se, ok := ExtractSQLiteError(err); ok {
		switch se.Code() & 0xff {
		case sqliteErrBusy, sqliteErrLocked:
			return true
		}
		return false
	}
	// text fallback for errors the driver surfaces as plain strings
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "database is locked") || strings.Contains(s, "database table is locked")
}
