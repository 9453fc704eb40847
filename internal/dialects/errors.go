package dialects

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coregx/sqldialect/internal/typename"
)

// Predefined errors returned by dialect operations.
var (
	// ErrUnmappedType is returned when a dialect has no type name for a column type.
	ErrUnmappedType = errors.New("unmapped column type")
	// ErrNoDialectFound is returned when no registered dialect accepts a connection.
	ErrNoDialectFound = errors.New("no registered dialect supports this connection")
	// ErrNoVersionProbe is returned by dialects without a version query.
	ErrNoVersionProbe = errors.New("dialect has no version probe")
	// ErrUnknownDialect is returned when a dialect name is not registered.
	ErrUnknownDialect = errors.New("unknown dialect")
	// ErrNoTableName is returned when a table definition has no name.
	ErrNoTableName = errors.New("table has no name")
	// ErrNoColumns is returned when a table definition has no columns.
	ErrNoColumns = errors.New("table has no columns")
)

// UnmappedTypeError reports a column type a dialect cannot resolve.
type UnmappedTypeError struct {
	Dialect   string
	Code      typename.Code
	Length    int
	Precision int
}

func (e *UnmappedTypeError) Error() string {
	if e.Precision > 0 {
		return fmt.Sprintf("%s: no type name for %s with precision %d", e.Dialect, e.Code, e.Precision)
	}
	if e.Length > 0 {
		return fmt.Sprintf("%s: no type name for %s with length %d", e.Dialect, e.Code, e.Length)
	}
	return fmt.Sprintf("%s: no type name for %s", e.Dialect, e.Code)
}

// Unwrap returns ErrUnmappedType.
func (e *UnmappedTypeError) Unwrap() error {
	return ErrUnmappedType
}

// UnknownDialectError reports a lookup for a name no dialect answers to.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

// Unwrap returns ErrUnknownDialect.
func (e *UnknownDialectError) Unwrap() error {
	return ErrUnknownDialect
}
