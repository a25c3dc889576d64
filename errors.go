package recstore

import (
	"errors"
	"fmt"

	"github.com/hupe1980/recstore/internal/conv"
)

var (
	// ErrDuplicateKey reports a record whose key is already stored.
	// Insert signals it with a false return; Import counts it as skipped.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownColumn is returned by queries against a column the schema does
	// not declare, when the collection was created WithStrictColumns.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidRecord is returned when a record does not conform to the schema.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrParse matches every error caused by malformed query text for a
	// numeric or key column.
	ErrParse = conv.ErrParse
)

// ParseError describes malformed query text. It matches ErrParse.
type ParseError = conv.ParseError

// ErrImport reports a line that could not be imported.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrImport struct {
	Line  int
	cause error
}

func (e *ErrImport) Error() string {
	return fmt.Sprintf("import line %d: %v", e.Line, e.cause)
}

func (e *ErrImport) Unwrap() error { return e.cause }

func invalidRecord(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
}

func unknownColumn(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}
