// Package sqlerr classifies database driver errors.
//
// It understands both drivers the service can run on (mattn/go-sqlite3 and
// pgx) and normalizes their error codes into one Code enum, so the rest of
// the application can log and map storage failures without caring which
// driver produced them.
package sqlerr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Code is a driver-independent error category.
type Code string

const (
	Other               Code = "other"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	Busy                Code = "busy"
)

// Error is a normalized driver error.
type Error struct {
	Code Code

	// DatabaseCode is the driver's own code: the SQLSTATE for Postgres,
	// the extended result code for SQLite.
	DatabaseCode   string
	Message        string
	TableName      string
	ColumnName     string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Code, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// Classify walks the error chain looking for a SQLite or Postgres driver
// error and converts it. It returns nil when none is found.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return ConvertSQLiteError(liteErr)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	return nil
}

// ConvertSQLiteError converts a go-sqlite3 error.
//
// SQLite does not report table or column metadata, only the message.
func ConvertSQLiteError(src sqlite3.Error) *Error {
	return &Error{
		Code:         MapSQLiteCode(src),
		DatabaseCode: fmt.Sprintf("%d", int(src.ExtendedCode)),
		Message:      src.Error(),
		driverErr:    src,
	}
}

// MapSQLiteCode maps SQLite primary and extended result codes.
func MapSQLiteCode(src sqlite3.Error) Code {
	switch src.ExtendedCode {
	case sqlite3.ErrConstraintForeignKey:
		return ForeignKeyViolation
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return UniqueViolation
	case sqlite3.ErrConstraintNotNull:
		return NotNullViolation
	case sqlite3.ErrConstraintCheck:
		return CheckViolation
	}

	switch src.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Busy
	}

	return Other
}

// ConvertPgError converts a pgconn.PgError.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapPgCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// MapPgCode maps a Postgres SQLSTATE.
func MapPgCode(sqlState string) Code {
	switch sqlState {
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "40001", "40P01", "55P03":
		return Busy
	}
	return Other
}
